package dynamo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-shop-api/internal/domain"
)

// ProductRepo provides typed DynamoDB operations for the products table.
// PK: product_id.
type ProductRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewProductRepo(client *dynamodb.Client, tableName string) *ProductRepo {
	return &ProductRepo{client: client, tableName: tableName}
}

func (r *ProductRepo) Put(ctx context.Context, p *domain.Product) error {
	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return fmt.Errorf("marshal product: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *ProductRepo) Get(ctx context.Context, productID string) (*domain.Product, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("product_id", productID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("product %s: %w", productID, domain.ErrNotFound)
	}
	var p domain.Product
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) Update(ctx context.Context, productID string, updates map[string]interface{}) (*domain.Product, error) {
	updates[fieldUpdatedAt] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return nil, err
	}
	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("product_id", productID),
		UpdateExpression:          aws.String(ue.Expr),
		ConditionExpression:       aws.String("attribute_exists(product_id)"),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		return nil, err
	}
	var p domain.Product
	if err := attributevalue.UnmarshalMap(out.Attributes, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) Delete(ctx context.Context, productID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("product_id", productID),
	})
	return err
}

// ScanFilter returns a page of products matching the filter.
// cursor is a base64-encoded product_id used as ExclusiveStartKey.
func (r *ProductRepo) ScanFilter(ctx context.Context, f domain.ProductFilter) ([]domain.Product, string, error) {
	var conds []string
	names := map[string]string{}
	values := map[string]types.AttributeValue{}

	addEq := func(attr, val string) {
		placeholder := "#" + attr
		names[placeholder] = attr
		values[":"+attr] = &types.AttributeValueMemberS{Value: val}
		conds = append(conds, fmt.Sprintf("%s = :%s", placeholder, attr))
	}
	if f.Search != "" {
		names["#name"] = fieldName
		values[":q"] = &types.AttributeValueMemberS{Value: f.Search}
		conds = append(conds, "contains(#name, :q)")
	}
	if f.Category != "" {
		addEq("category", f.Category)
	}
	if f.SubCategory != "" {
		addEq("sub_category", f.SubCategory)
	}
	if f.Design != "" {
		addEq("design", f.Design)
	}
	if f.PriceMin != nil {
		values[":pmin"] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%g", *f.PriceMin)}
		conds = append(conds, "price >= :pmin")
	}
	if f.PriceMax != nil {
		values[":pmax"] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%g", *f.PriceMax)}
		conds = append(conds, "price <= :pmax")
	}
	if f.RatingMin != nil {
		values[":rmin"] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%g", *f.RatingMin)}
		conds = append(conds, "average_rating >= :rmin")
	}
	if f.ActiveOnly {
		values[":act"] = &types.AttributeValueMemberBOOL{Value: true}
		conds = append(conds, "is_active = :act")
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 10
	}
	input := &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
		Limit:     aws.Int32(limit),
	}
	if len(conds) > 0 {
		input.FilterExpression = aws.String(strings.Join(conds, " AND "))
		input.ExpressionAttributeValues = values
		if len(names) > 0 {
			input.ExpressionAttributeNames = names
		}
	}
	if f.Cursor != "" {
		productID, err := decodeCursor(f.Cursor)
		if err != nil {
			return nil, "", fmt.Errorf("invalid cursor: %w", domain.ErrBadRequest)
		}
		input.ExclusiveStartKey = strKey("product_id", productID)
	}

	out, err := r.client.Scan(ctx, input)
	if err != nil {
		return nil, "", err
	}
	var products []domain.Product
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &products); err != nil {
		return nil, "", err
	}
	nextCursor := ""
	if v, ok := out.LastEvaluatedKey["product_id"].(*types.AttributeValueMemberS); ok {
		nextCursor = encodeCursor(v.Value)
	}
	return products, nextCursor, nil
}
