package domain

// DefaultNotificationTitle is used when a record carries no receiver type.
const DefaultNotificationTitle = "Notification"

// Notification audiences. Stored in the "audience" attribute so both sources
// can be queried through the same GSI.
const (
	AudiencePersonal  = "personal"
	AudienceBroadcast = "broadcast"
)

// NotificationRecord is a raw notification as stored and as served by the
// personal and broadcast endpoints. A nil ReceiverID marks a broadcast.
type NotificationRecord struct {
	ID           string  `json:"id" dynamodbav:"notification_id"`
	ReceiverID   *string `json:"receiverId" dynamodbav:"receiver_id,omitempty"`
	ReceiverType string  `json:"receiverType" dynamodbav:"receiver_type"`
	Audience     string  `json:"-" dynamodbav:"audience"`
	Message      string  `json:"message" dynamodbav:"message"`
	Read         bool    `json:"read" dynamodbav:"read"`
	CreatedAt    string  `json:"createdAt" dynamodbav:"created_at"`
}

// IsPersonal reports whether the record targets a specific user.
func (n NotificationRecord) IsPersonal() bool {
	return n.ReceiverID != nil
}

// NormalizedNotification is the display shape produced by the feed merge.
type NormalizedNotification struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	RawTime    string `json:"rawTime"`
	Time       string `json:"time"`
	Read       bool   `json:"read"`
	IsPersonal bool   `json:"isPersonal"`
}

// BroadcastInput is the admin request body for publishing a broadcast. An
// empty ReceiverType falls back to DefaultNotificationTitle.
type BroadcastInput struct {
	ReceiverType string `json:"receiverType" validate:"omitempty,max=64"`
	Message      string `json:"message" validate:"required,max=2000"`
}
