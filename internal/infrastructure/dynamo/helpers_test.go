package dynamo

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrKey(t *testing.T) {
	key := strKey("email", "a@b.com")
	av, ok := key["email"].(*types.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, "a@b.com", av.Value)
}

func TestCompositeKey(t *testing.T) {
	key := compositeKey("email", "a@b.com", "purpose", "signup")
	pk, ok := key["email"].(*types.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, "a@b.com", pk.Value)
	sk, ok := key["purpose"].(*types.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, "signup", sk.Value)
}

func TestBuildUpdateExpr_SingleField(t *testing.T) {
	ue, err := buildUpdateExpr(map[string]interface{}{"name": "alice"})
	require.NoError(t, err)
	assert.Equal(t, "SET #f0 = :v0", ue.Expr)
	assert.Equal(t, map[string]string{"#f0": "name"}, ue.Names)
	_, ok := ue.Values[":v0"]
	assert.True(t, ok)
}

func TestBuildUpdateExpr_MultipleFields_Deterministic(t *testing.T) {
	updates := map[string]interface{}{
		"avatar": "a.png",
		"name":   "Alice",
		"price":  9.5,
	}
	// Call twice to verify determinism.
	ue1, err := buildUpdateExpr(updates)
	require.NoError(t, err)
	ue2, err := buildUpdateExpr(updates)
	require.NoError(t, err)

	assert.Equal(t, ue1.Expr, ue2.Expr)

	// Keys must be sorted: avatar < name < price
	assert.Equal(t, "avatar", ue1.Names["#f0"])
	assert.Equal(t, "name", ue1.Names["#f1"])
	assert.Equal(t, "price", ue1.Names["#f2"])
	assert.Equal(t, "SET #f0 = :v0, #f1 = :v1, #f2 = :v2", ue1.Expr)
}

func TestBuildUpdateExpr_ValuesMarshalledCorrectly(t *testing.T) {
	ue, err := buildUpdateExpr(map[string]interface{}{"is_active": true})
	require.NoError(t, err)
	av, ok := ue.Values[":v0"]
	require.True(t, ok)
	boolVal, isBool := av.(*types.AttributeValueMemberBOOL)
	require.True(t, isBool)
	assert.True(t, boolVal.Value)
}

func TestBuildUpdateExpr_EmptyMap_ReturnsError(t *testing.T) {
	_, err := buildUpdateExpr(map[string]interface{}{})
	assert.ErrorContains(t, err, "no fields to update")
}

func TestCursorRoundTrip(t *testing.T) {
	cursor := encodeCursor("01J8ZK3Q")
	got, err := decodeCursor(cursor)
	require.NoError(t, err)
	assert.Equal(t, "01J8ZK3Q", got)
}

func TestDecodeCursor_Invalid(t *testing.T) {
	_, err := decodeCursor("%%%not-base64%%%")
	assert.Error(t, err)
}
