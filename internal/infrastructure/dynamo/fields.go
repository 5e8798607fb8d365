package dynamo

// DynamoDB attribute names used in update expressions across all repos.
// Using constants prevents silent runtime bugs caused by key typos.
const (
	fieldName          = "name"
	fieldAvatar        = "avatar"
	fieldPasswordHash  = "password_hash"
	fieldUpdatedAt     = "updated_at"
	fieldAverageRating = "average_rating"
	fieldRatingCount   = "rating_count"
)
