package http

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/bookshop-service/cmd/api/book"
	"github.com/golang-jwt/jwt/v5"
)

// RequireToken guards a route group behind bearer authentication. It only
// answers "does a valid signed token accompany this call" — issuance and
// identity live with the external provider.
func RequireToken(secret string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !found || tokenStr == "" {
			responseJSON(w, http.StatusUnauthorized, book.ErrResponseMissingToken)
			return
		}

		_, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil {
			log.Println(err)
			responseJSON(w, http.StatusUnauthorized, book.ErrResponseMissingToken)
			return
		}

		next.ServeHTTP(w, r)
	})
}
