package jsonvalue

import "iter"

// KeyView is a live view of an object's key set. It holds no copy: changes
// made through the view are changes to the object and vice versa.
type KeyView struct {
	o *Object
}

func (v *KeyView) Len() int {
	return v.o.Len()
}

func (v *KeyView) Contains(key string) bool {
	return v.o.Has(key)
}

// Remove deletes key from the underlying object.
func (v *KeyView) Remove(key string) bool {
	if !v.o.Has(key) {
		return false
	}
	delete(v.o.members, key)
	return true
}

// All iterates over the keys in unspecified order.
func (v *KeyView) All() iter.Seq[string] {
	return v.o.Keys()
}

// Sorted returns a sorted snapshot of the keys.
func (v *KeyView) Sorted() []string {
	return v.o.sortedKeys()
}

// EntryView is a live view of an object's members.
type EntryView struct {
	o *Object
}

func (v *EntryView) Len() int {
	return v.o.Len()
}

// All iterates over key/value pairs in unspecified order.
func (v *EntryView) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for k, val := range v.o.members {
			if !yield(k, val) {
				return
			}
		}
	}
}

// Set replaces the value of an entry with Object.Put semantics.
func (v *EntryView) Set(key string, value any) error {
	return v.o.Put(key, value)
}

// Delete removes an entry from the underlying object.
func (v *EntryView) Delete(key string) {
	delete(v.o.members, key)
}
