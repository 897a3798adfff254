package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// OTPHeader carries the one-time code of a sensitive request
const OTPHeader = "X-OTP-Code"

// SecondFactorChecker verifies the second factor of a user
type SecondFactorChecker interface {
	RequireSecondFactor(ctx context.Context, userID int64, code string) error
}

// SecondFactor guards sensitive routes. Users with two-factor enabled must
// send a valid code in OTPHeader; it is consumed on success.
func SecondFactor(checker SecondFactorChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := MustUserID(c)
		if !ok {
			return
		}

		if err := checker.RequireSecondFactor(c.Request.Context(), userID, c.GetHeader(OTPHeader)); err != nil {
			HandleAPIError(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}
