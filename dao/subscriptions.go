package dao

import "sort"

type SubscriberSet map[int64]struct{}

func NewSubscriberSet(ids ...int64) SubscriberSet {
	set := SubscriberSet{}

	for _, id := range ids {
		set[id] = struct{}{}
	}

	return set
}

func (s SubscriberSet) Contains(id int64) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the ids in ascending order.
func (s SubscriberSet) Sorted() []int64 {
	ids := make([]int64, 0, len(s))

	for id := range s {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool {
		return ids[i] < ids[j]
	})

	return ids
}

// SubscriberRegistry maps a class name to its subscribers. A class never maps
// to an empty set.
type SubscriberRegistry map[string]SubscriberSet

// Copy returns a deep copy that can be read without holding the owner's lock.
func (r SubscriberRegistry) Copy() SubscriberRegistry {
	result := make(SubscriberRegistry, len(r))

	for class, ids := range r {
		set := make(SubscriberSet, len(ids))

		for id := range ids {
			set[id] = struct{}{}
		}

		result[class] = set
	}

	return result
}

// ClassesOf returns the sorted classes the subscriber is registered for.
func (r SubscriberRegistry) ClassesOf(id int64) []string {
	var classes []string

	for class, ids := range r {
		if ids.Contains(id) {
			classes = append(classes, class)
		}
	}

	sort.Strings(classes)

	return classes
}
