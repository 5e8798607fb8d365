package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-shop-api/internal/domain"
)

// VerificationRepo is the escrow store for pending one-time codes.
// PK: email, SK: purpose. At most one live entry per (purpose, email).
//
// expires_at is registered as the table's TTL attribute, but the sweep is
// lazy; every read and conditional write here re-evaluates liveness
// against the current clock so an unswept expired entry is never honored.
type VerificationRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewVerificationRepo(client *dynamodb.Client, tableName string) *VerificationRepo {
	return &VerificationRepo{client: client, tableName: tableName}
}

// Put stores a new pending entry. The condition admits the write only when
// no item exists for the key or the existing item has already expired, so
// a live entry is never overwritten; issuance while one is live fails
// with ErrAlreadyPending.
func (r *VerificationRepo) Put(ctx context.Context, v *domain.VerificationEntry) error {
	item, err := attributevalue.MarshalMap(v)
	if err != nil {
		return fmt.Errorf("marshal verification: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(email) OR expires_at <= :now"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":now": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", v.IssuedAt)},
		},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("entry still live for %s/%s: %w", v.Purpose, v.Email, domain.ErrAlreadyPending)
		}
		return err
	}
	return nil
}

// Get fetches the raw entry for (purpose, email). Callers own the liveness
// check; absence maps to ErrNoPendingCode.
func (r *VerificationRepo) Get(ctx context.Context, purpose domain.Purpose, email string) (*domain.VerificationEntry, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       compositeKey("email", email, "purpose", string(purpose)),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("verification for %s/%s: %w", purpose, email, domain.ErrNoPendingCode)
	}
	var v domain.VerificationEntry
	if err := attributevalue.UnmarshalMap(out.Item, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Consume atomically deletes the entry only if the submitted
// code matches and the entry is still live, returning the deleted entry
// with its escrowed payload. The conditional delete is a single DynamoDB
// operation, so two concurrent calls with the correct code yield exactly
// one success; the loser observes ErrNoPendingCode.
//
// On a failed condition the entry is left untouched: a follow-up read
// distinguishes a live-but-mismatched code (ErrInvalidCode, retryable
// within the TTL window) from a missing or expired entry (ErrNoPendingCode).
func (r *VerificationRepo) Consume(ctx context.Context, purpose domain.Purpose, email, code string, now time.Time) (*domain.VerificationEntry, error) {
	out, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 compositeKey("email", email, "purpose", string(purpose)),
		ConditionExpression: aws.String("code = :code AND expires_at > :now"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":code": &types.AttributeValueMemberS{Value: code},
			":now":  &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", now.Unix())},
		},
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if !errors.As(err, &ccf) {
			return nil, err
		}
		existing, getErr := r.Get(ctx, purpose, email)
		if getErr != nil || !existing.Live(now) {
			return nil, fmt.Errorf("verification for %s/%s: %w", purpose, email, domain.ErrNoPendingCode)
		}
		return nil, fmt.Errorf("code mismatch for %s/%s: %w", purpose, email, domain.ErrInvalidCode)
	}
	if out.Attributes == nil {
		return nil, fmt.Errorf("verification for %s/%s: %w", purpose, email, domain.ErrNoPendingCode)
	}
	var v domain.VerificationEntry
	if err := attributevalue.UnmarshalMap(out.Attributes, &v); err != nil {
		return nil, err
	}
	return &v, nil
}
