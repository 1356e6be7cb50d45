package dto

type SuspendResponse struct {
	UserID         uint  `json:"user_id"`
	TokensRevoked  int64 `json:"tokens_revoked"`
	DevicesBlocked int64 `json:"devices_blocked"`
	IPsFlagged     int64 `json:"ips_flagged"`
}

type IPActionResponse struct {
	IP      string `json:"ip"`
	Updated int64  `json:"updated"`
}
