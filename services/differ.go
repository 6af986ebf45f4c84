package services

import (
	"sort"

	"substitution-plan-notifier/dao"
)

// ChangedClasses returns the sorted subscribed classes whose substitutions in
// current differ from previous. A nil previous marks every subscribed class
// present in current as changed.
func ChangedClasses(previous *dao.Schedule, current *dao.Schedule, registry dao.SubscriberRegistry) []string {
	var changed []string

	for class := range registry {
		substitutions, ok := current.GetSubstitutions(class)

		if !ok {
			continue
		}

		if previous != nil {
			old, existed := previous.GetSubstitutions(class)

			if existed && old == substitutions {
				continue
			}
		}

		changed = append(changed, class)
	}

	sort.Strings(changed)

	return changed
}

// DiffSchedules returns every subscriber of a changed class.
func DiffSchedules(previous *dao.Schedule, current *dao.Schedule, registry dao.SubscriberRegistry) dao.SubscriberSet {
	result := dao.SubscriberSet{}

	for _, class := range ChangedClasses(previous, current, registry) {
		for id := range registry[class] {
			result[id] = struct{}{}
		}
	}

	return result
}
