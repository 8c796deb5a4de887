package emburse

import (
	"testing"
	"time"

	"github.com/MarcFord/emburse-go/tests/helpers/testutil"
	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, body string) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, sonic.UnmarshalString(body, &m))
	return m
}

func TestMaterializeAccount(t *testing.T) {
	value := Materialize(decode(t, testutil.AccountJSON), "tok", "account")

	account, ok := value.(*Account)
	require.True(t, ok, "expected *Account, got %T", value)

	assert.Equal(t, "account", account.Kind())
	assert.Equal(t, testutil.AccountID, account.ID())
	assert.Equal(t, 1258.43, account.LedgerBalance())
	assert.Equal(t, "880307390512", account.Number())
	assert.True(t, time.Date(2015, 9, 12, 17, 5, 3, 58556000, time.UTC).Equal(account.CreatedAt()))
	assert.Equal(t, "tok", account.token)
	assert.Nil(t, account.backend)
}

func TestMaterializeNestedTyping(t *testing.T) {
	value := Materialize(decode(t, testutil.CardJSON), "tok", "card")
	card := value.(*Card)

	category := card.Category()
	require.NotNil(t, category)
	assert.Equal(t, "Travel", category.Name())
	require.NotNil(t, category.Parent())
	assert.Equal(t, "Operations", category.Parent().Name())

	allowance := card.Allowance()
	require.NotNil(t, allowance)
	assert.Equal(t, "monthly", allowance.Interval())
	assert.Equal(t, 500.0, allowance.Amount())
	assert.Equal(t, 250.0, allowance.TransactionLimit())

	address := card.GetResource("billing_address")
	require.NotNil(t, address)
	_, generic := address.(*Object)
	assert.True(t, generic)
	assert.Equal(t, "billing_address", address.Kind())

	assert.True(t, card.Has("shared_link"))
	assert.Nil(t, card.GetResource("shared_link"))
	assert.True(t, time.Date(2017, 9, 30, 0, 0, 0, 0, time.UTC).Equal(card.Expiration()))
	assert.False(t, card.IsVirtual())
	assert.Equal(t, "4242", card.LastFour())
}

func TestMaterializeParentUsesContainerKind(t *testing.T) {
	value := Materialize(map[string]interface{}{
		"id":     "d1",
		"name":   "Engineering",
		"parent": map[string]interface{}{"id": "d0", "name": "Product"},
	}, "tok", "department")

	dept := value.(*Department)
	require.NotNil(t, dept.Parent())
	assert.Equal(t, "department", dept.Parent().Kind())
	assert.Equal(t, "Product", dept.Parent().Name())
}

func TestMaterializeList(t *testing.T) {
	value := Materialize([]interface{}{
		map[string]interface{}{"id": "1"},
		map[string]interface{}{"id": "2"},
		"45.67",
	}, "tok", "label")

	items := value.([]interface{})
	require.Len(t, items, 3)
	assert.Equal(t, "1", items[0].(*Label).ID())
	assert.Equal(t, "2", items[1].(*Label).ID())
	assert.Equal(t, 45.67, items[2])
}

func TestMaterializeScalars(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want interface{}
	}{
		{name: "timestamp", in: "2016-08-20T00:24:46.609518Z", want: time.Date(2016, 8, 20, 0, 24, 46, 609518000, time.UTC)},
		{name: "decimal", in: "45.67", want: 45.67},
		{name: "text", in: "abc", want: "abc"},
		{name: "integer string", in: "880307390512", want: "880307390512"},
		{name: "number", in: float64(3), want: float64(3)},
		{name: "bool", in: true, want: true},
		{name: "nil", in: nil, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Materialize(tt.in, "tok", "")
			if want, ok := tt.want.(time.Time); ok {
				assert.True(t, want.Equal(got.(time.Time)))
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMaterializeKeepsResources(t *testing.T) {
	card := Materialize(map[string]interface{}{"id": "c1"}, "tok", "card")
	assert.Same(t, card, Materialize(card, "other", "label"))
}

func TestMaterializeUnknownKind(t *testing.T) {
	value := Materialize(map[string]interface{}{"id": "x"}, "tok", "Widget")

	obj, ok := value.(*Object)
	require.True(t, ok)
	assert.Equal(t, "widget", obj.Kind())
}

func TestRefreshFromIsIdempotent(t *testing.T) {
	resp := decode(t, testutil.CardJSON)

	card := Materialize(resp, "tok", "card").(*Card)
	first := card.Keys()
	card.refreshFrom(resp)
	card.refreshFrom(resp)

	assert.Equal(t, first, card.Keys())
	assert.Equal(t, "Travel", card.Category().Name())
}

func TestObjectAsMap(t *testing.T) {
	card := Materialize(decode(t, testutil.CardJSON), "tok_secret", "card").(*Card)

	m := card.AsMap()
	category, ok := m["category"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Travel", category["name"])
	parent, ok := category["parent"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Operations", parent["name"])
	assert.NotContains(t, m, "auth_token")
	assert.NotContains(t, m, "token")
}

func TestObjectStringOmitsToken(t *testing.T) {
	card := Materialize(decode(t, testutil.CardJSON), "tok_secret", "card").(*Card)

	assert.NotContains(t, card.String(), "tok_secret")
	assert.Contains(t, card.String(), "<card ")
	assert.Contains(t, card.String(), "Travel card")

	data, err := sonic.Marshal(card)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "tok_secret")

	var round map[string]interface{}
	require.NoError(t, sonic.Unmarshal(data, &round))
	assert.Equal(t, "Travel card", round["description"])
}

func TestObjectAccessors(t *testing.T) {
	obj := Materialize(map[string]interface{}{
		"name":    "x",
		"amount":  "12.50",
		"active":  true,
		"count":   float64(4),
		"tags":    []interface{}{"a", "b"},
		"created": "2017-01-02",
	}, "tok", "").(*Object)

	assert.Equal(t, []string{"active", "amount", "count", "created", "name", "tags"}, obj.Keys())
	assert.Equal(t, "x", obj.GetString("name"))
	assert.Equal(t, "", obj.GetString("amount"))
	assert.Equal(t, 12.5, obj.GetFloat("amount"))
	assert.Equal(t, 4.0, obj.GetFloat("count"))
	assert.True(t, obj.GetBool("active"))
	assert.Len(t, obj.GetList("tags"), 2)
	assert.Equal(t, 2017, obj.GetTime("created").Year())
	assert.Equal(t, "", obj.ID())

	_, ok := obj.Get("missing")
	assert.False(t, ok)
	assert.False(t, obj.Has("missing"))
}
