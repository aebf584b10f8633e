package jsonvalue

import (
	"testing"
)

const storeDoc = `{
	"store": {
		"book": [
			{"title": "Sayings", "price": 8.95, "isbn": "0-553"},
			{"title": "Sword", "price": 12, "tags": ["epic"]},
			{"title": "Moby", "price": 8, "isbn": "0-395"}
		],
		"bicycle": {"color": "red", "price": 123456789012345678901}
	}
}`

func TestSelect(t *testing.T) {
	doc, err := Parse(storeDoc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	t.Run("wildcard keeps document order", func(t *testing.T) {
		helper := NewTestHelper(t)
		titles, err := Select(doc, "$.store.book[*].title")
		helper.AssertNoError(err)
		helper.AssertEqual([]string{"Sayings", "Sword", "Moby"}, titles.ToStringList())
	})

	t.Run("index and slice", func(t *testing.T) {
		helper := NewTestHelper(t)
		last, err := Select(doc, "$.store.book[-1].title")
		helper.AssertNoError(err)
		helper.AssertEqual([]string{"Moby"}, last.ToStringList())

		firstTwo, err := Select(doc, "$.store.book[0:2].price")
		helper.AssertNoError(err)
		helper.AssertSimilar(mustArray(t, `[8.95, 12]`), firstTwo)
	})

	t.Run("filters", func(t *testing.T) {
		helper := NewTestHelper(t)
		withISBN, err := Select(doc, "$.store.book[?@.isbn].title")
		helper.AssertNoError(err)
		helper.AssertEqual([]string{"Sayings", "Moby"}, withISBN.ToStringList())

		cheap, err := Select(doc, "$.store.book[?@.price < 10].title")
		helper.AssertNoError(err)
		helper.AssertEqual([]string{"Sayings", "Moby"}, cheap.ToStringList())

		named, err := Select(doc, "$.store.book[?@.title == 'Sword'].tags[0]")
		helper.AssertNoError(err)
		helper.AssertEqual([]string{"epic"}, named.ToStringList())
	})

	t.Run("results are copies with narrowed numbers", func(t *testing.T) {
		helper := NewTestHelper(t)
		bikes, err := Select(doc, "$.store.bicycle")
		helper.AssertNoError(err)
		helper.AssertEqual(1, bikes.Len())

		bike, err := bikes.GetObject(0)
		helper.AssertNoError(err)
		price, err := bike.GetNumber("price")
		helper.AssertNoError(err)
		helper.AssertEqual(KindBigInt, price.Kind())

		helper.AssertNoError(bike.Put("color", "blue"))
		helper.AssertEqual("red", OptQuery(doc, "/store/bicycle/color"))
	})

	t.Run("no match", func(t *testing.T) {
		helper := NewTestHelper(t)
		none, err := Select(doc, "$.store.car")
		helper.AssertNoError(err)
		helper.AssertEqual(0, none.Len())
	})

	t.Run("invalid expression", func(t *testing.T) {
		helper := NewTestHelper(t)
		_, err := Select(doc, "$.store[")
		helper.AssertErrorIs(err, ErrSyntax)
	})
}

func mustArray(t *testing.T, text string) *Array {
	t.Helper()
	a, err := ParseArray(text)
	if err != nil {
		t.Fatalf("parse %s: %v", text, err)
	}
	return a
}
