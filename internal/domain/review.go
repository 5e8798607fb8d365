package domain

import "time"

type Review struct {
	ReviewID  string    `json:"id" dynamodbav:"review_id"`
	ProductID string    `json:"product_id" dynamodbav:"product_id"`
	UserID    string    `json:"user_id" dynamodbav:"user_id"`
	Rating    int       `json:"rating" dynamodbav:"rating"`
	Comment   string    `json:"comment,omitempty" dynamodbav:"comment"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}
