package dynamo

// DynamoDB attribute and index names shared by the repos and Bootstrap.
// Using constants prevents silent runtime bugs caused by key typos.
const (
	fieldNotificationID = "notification_id"
	fieldReceiverID     = "receiver_id"
	fieldAudience       = "audience"
	fieldCreatedAt      = "created_at"
	fieldRead           = "read"

	fieldRecordID   = "record_id"
	fieldInvestorID = "investor_id"

	indexReceiverCreatedAt = "receiver_id-created_at-index"
	indexAudienceCreatedAt = "audience-created_at-index"
	indexInvestorCreatedAt = "investor_id-created_at-index"
)
