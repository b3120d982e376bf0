// Package types defines the Store, Tx and Collection interfaces, the
// flashcard catalog entities, configuration, and the error kinds shared by
// every layer of avioncards.
package types
