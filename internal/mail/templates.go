package mail

import "fmt"

// SuspensionNotice is sent once an account has been suspended.
func SuspensionNotice(to, name string) Message {
	if name == "" {
		name = to
	}
	text := fmt.Sprintf(`Hello %s,

Your account has been suspended and you can no longer sign in.

If you believe this is a mistake, reply to this email and our support team will review your case.
`, name)

	html := fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<body style="font-family: Arial, sans-serif; color: #333;">
  <p>Hello %s,</p>
  <p>Your account has been suspended and you can no longer sign in.</p>
  <p>If you believe this is a mistake, reply to this email and our support team will review your case.</p>
</body>
</html>`, name)

	return Message{
		To:      to,
		Subject: "Your account has been suspended",
		Text:    text,
		HTML:    html,
	}
}
