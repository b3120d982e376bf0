package types

// Collection names accepted by Store.Transaction and Store.ClearAll.
const (
	FlashcardsCollection = "flashcards"
	CategoriesCollection = "categories"
	ImagesCollection     = "images"
)

// AllCollections lists every collection of the store.
var AllCollections = []string{
	FlashcardsCollection,
	CategoriesCollection,
	ImagesCollection,
}

// IsCollection reports whether name is a known collection.
func IsCollection(name string) bool {
	switch name {
	case FlashcardsCollection, CategoriesCollection, ImagesCollection:
		return true
	}
	return false
}

// TxMode selects whether a transaction may write.
type TxMode int

const (
	ReadOnly TxMode = iota
	ReadWrite
)

func (m TxMode) String() string {
	if m == ReadWrite {
		return "readwrite"
	}
	return "readonly"
}
