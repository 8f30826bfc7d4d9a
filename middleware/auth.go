package middleware

import (
	"net/http"

	"gitea.com/go-chi/session"

	"github.com/JayL96/user-management/userctx"
)

// RequireAuth ensures the operator is signed in. Unauthenticated requests
// are redirected to /login with the intended destination remembered.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.GetSession(r)
		operatorID, _ := sess.Get("operator_id").(string)

		if operatorID == "" {
			sess.Set("redirect_after_login", r.URL.Path)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		ctx := userctx.SetOperatorID(r.Context(), operatorID)
		if name, _ := sess.Get("operator_name").(string); name != "" {
			ctx = userctx.SetOperatorName(ctx, name)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
