package users

import (
	"encoding/base64"
	"fmt"
	"time"
)

const tokenScheme = "Bearer "

// issueToken builds the login token: "Bearer " + base64("<id>:<email>:<unix millis>").
// It is a reversible placeholder, not a credential; nothing verifies it.
func issueToken(userID int64, email string, now time.Time) string {
	raw := fmt.Sprintf("%d:%s:%d", userID, email, now.UnixMilli())
	return tokenScheme + base64.StdEncoding.EncodeToString([]byte(raw))
}
