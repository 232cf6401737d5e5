package public

import (
	handlershared "github.com/rarebeats-player/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, code, msg string, err error) {
	handlershared.RespondError(c, status, code, msg, err)
}
