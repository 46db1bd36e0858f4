package repo

import (
	dom "github.com/CleanArchitectureTutorials/PackAndGo/internal/domain"

	"github.com/google/uuid"
)

// ItemRow is the storage shape of one packing list item.
type ItemRow struct {
	ID     uuid.UUID
	Name   string
	Packed bool
}

// ItemPlan is the minimal set of row operations that brings persisted item
// rows in line with an aggregate's in-memory items.
type ItemPlan struct {
	Inserts []ItemRow
	Updates []ItemRow
	Deletes []uuid.UUID
}

// PlanItems diffs the persisted rows against the desired items. Matching is
// strictly by ID; name collisions are irrelevant. An ID present on both
// sides becomes an in-place update so the underlying row keeps its
// storage-level identity. Updates are emitted even when nothing changed:
// the last writer wins and there is no dirty tracking to consult.
func PlanItems(persisted []ItemRow, desired []dom.Item) ItemPlan {
	var plan ItemPlan

	existing := make(map[uuid.UUID]bool, len(persisted))
	for _, row := range persisted {
		existing[row.ID] = true
	}

	wanted := make(map[uuid.UUID]bool, len(desired))
	for _, it := range desired {
		wanted[it.ID()] = true
		row := ItemRow{ID: it.ID(), Name: it.Name(), Packed: it.IsPacked()}
		if existing[it.ID()] {
			plan.Updates = append(plan.Updates, row)
		} else {
			plan.Inserts = append(plan.Inserts, row)
		}
	}

	for _, row := range persisted {
		if !wanted[row.ID] {
			plan.Deletes = append(plan.Deletes, row.ID)
		}
	}

	return plan
}
