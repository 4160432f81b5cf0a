package api

// Result is what a command execution produced: a single item, an
// ordered collection, or nothing. Collections keep the server-returned
// order; the client never reorders.
type Result struct {
	item       *Document
	items      []*Document
	collection bool
}

// ItemResult wraps a single resource document.
func ItemResult(doc *Document) *Result {
	return &Result{item: doc}
}

// CollectionResult wraps an ordered sequence of resource documents.
func CollectionResult(items []*Document) *Result {
	return &Result{items: items, collection: true}
}

// EmptyResult represents a successful operation with no body.
func EmptyResult() *Result {
	return &Result{}
}

// IsCollection reports whether the result is a collection (possibly
// with zero elements).
func (r *Result) IsCollection() bool { return r.collection }

// IsEmpty reports whether the result carries no data at all.
func (r *Result) IsEmpty() bool {
	return !r.collection && r.item == nil
}

// Item returns the single document, or nil.
func (r *Result) Item() *Document { return r.item }

// Items returns the documents to render, regardless of arity.
func (r *Result) Items() []*Document {
	if r.collection {
		return r.items
	}
	if r.item != nil {
		return []*Document{r.item}
	}
	return nil
}

// Len returns the number of documents in the result.
func (r *Result) Len() int { return len(r.Items()) }
