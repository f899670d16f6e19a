package domain

// Item is one row of an ItemList. Index is the row position inside the list
// it belongs to and is meaningless across lists.
type Item[T any] struct {
	Index int
	Value T
}

// QueryResult is either an ExactMatch or an ItemList.
type QueryResult[T any] interface {
	isQueryResult()
}

// ExactMatch is produced when auto-selection found exactly one candidate
// whose formatted text equals the query.
type ExactMatch[T any] struct {
	Item T
}

func (ExactMatch[T]) isQueryResult() {}

// ItemList is the list offered for manual picking. Truncated reports that
// more candidates matched than Items holds.
type ItemList[T any] struct {
	Query     string
	Items     []Item[T]
	Truncated bool
}

func (ItemList[T]) isQueryResult() {}

// Len returns the number of displayed rows
func (l ItemList[T]) Len() int {
	return len(l.Items)
}

// At returns the value at row index
func (l ItemList[T]) At(index int) (T, bool) {
	if index < 0 || index >= len(l.Items) {
		var zero T
		return zero, false
	}
	return l.Items[index].Value, true
}

// Values returns the row values in display order
func (l ItemList[T]) Values() []T {
	values := make([]T, len(l.Items))
	for i, item := range l.Items {
		values[i] = item.Value
	}
	return values
}

// NewItemList indexes values in order
func NewItemList[T any](query string, values []T, truncated bool) ItemList[T] {
	items := make([]Item[T], len(values))
	for i, v := range values {
		items[i] = Item[T]{Index: i, Value: v}
	}
	return ItemList[T]{Query: query, Items: items, Truncated: truncated}
}

// AsItemList unwraps an ItemList result
func AsItemList[T any](r QueryResult[T]) (ItemList[T], bool) {
	list, ok := r.(ItemList[T])
	return list, ok
}

// AsExactMatch unwraps an ExactMatch result
func AsExactMatch[T any](r QueryResult[T]) (ExactMatch[T], bool) {
	match, ok := r.(ExactMatch[T])
	return match, ok
}
