package middleware

import (
	"strings"

	"hrd_survey_backend/internal/config"
	"hrd_survey_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware Authorization 헤더의 Bearer 토큰을 검증하고
// 클레임을 컨텍스트에 넣는다.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}
