package tree

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/Makepad-fr/tada/internal/model"
)

func randomForest(r *rand.Rand, depth int, next *int) []model.Todo {
	n := r.Intn(4)
	if depth == 0 {
		n = 0
	}
	out := make([]model.Todo, 0, n)
	for i := 0; i < n; i++ {
		*next++
		out = append(out, node(fmt.Sprintf("n%d", *next), r.Intn(2) == 0, randomForest(r, depth-1, next)...))
	}
	return out
}

func allIDs(list []model.Todo) []string {
	var out []string
	for _, row := range FlattenForExport(list) {
		out = append(out, row.ID)
	}
	return out
}

// Random operations on random forests must always leave the completion
// rule intact.
func TestInvariantHoldsAfterEveryOperation(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for round := 0; round < 200; round++ {
		var counter int
		list := ReconcileTree(randomForest(r, 4, &counter))
		if again := ReconcileTree(list); !sameList(again, list) {
			t.Fatalf("round %d: ReconcileTree is not idempotent", round)
		}

		for step := 0; step < 10; step++ {
			known := allIDs(list)
			if len(known) == 0 {
				break
			}
			pick := func() string { return known[r.Intn(len(known))] }

			switch r.Intn(7) {
			case 0:
				list, _ = UpdateTodos(list, pick(), ToggleCompletion)
			case 1:
				list, _ = DeleteTodo(list, pick())
			case 2:
				list, _ = CompleteChildrenBatch(list, pick(), NewIDSet(pick(), pick()))
			case 3:
				list, _ = DeleteChildrenBatch(list, pick(), NewIDSet(pick()))
			case 4:
				list, _ = UpdateChildrenPriorityBatch(list, pick(), NewIDSet(pick()), model.PriorityLow)
			case 5:
				list, _ = ReorderWithinParent(list, pick(), pick(), pick())
			case 6:
				counter++
				list, _ = UpdateTodos(list, pick(), AppendChild(node(fmt.Sprintf("n%d", counter), false)))
			}
			checkInvariant(t, list)
		}
	}
}
