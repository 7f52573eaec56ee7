package cmd

import (
	"fmt"

	"avm1core/pkg/attr"
	"avm1core/pkg/gc"
	"avm1core/pkg/object"
	"avm1core/pkg/value"

	"github.com/spf13/cobra"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Build a small prototype chain and exercise [[Get]]/[[Set]]/[[Delete]]",
	RunE:  runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(_ *cobra.Command, _ []string) error {
	arena := gc.NewArena()
	act := object.NewActivation(arena, caseSensitive)

	// score is the backing field a native accessor pair closes over —
	// the same shape the host environment uses for things like
	// MovieClip._x, where the visible property is virtual but the real
	// storage lives in host state, not the property table.
	score := 0
	getter := object.CallableFunc(func(_ *object.Activation, _ object.Object, _ object.Object, _ []value.Value) (value.Value, error) {
		return value.Number(float64(score)), nil
	})
	setter := object.CallableFunc(func(_ *object.Activation, _ object.Object, _ object.Object, args []value.Value) (value.Value, error) {
		if len(args) > 0 {
			score = int(args[0].ToFloat())
		}
		return value.Undefined(), nil
	})

	proto := object.NewObject(arena, nil)
	proto.AddProperty(act, "score", getter, setter, attr.Empty())
	proto.DefineValue(act, "kind", value.Str("prototype"), attr.New(attr.DontEnum))

	child := object.NewObject(arena, proto)
	child.DefineValue(act, "name", value.Str("child"), attr.Empty())

	root := arena.Allocate(&rootSet{objects: []object.Object{proto, child}})
	arena.AddRoot(root)

	fmt.Printf("before set: child.score = %s (via prototype's virtual getter)\n", object.Get(act, child, "score", child).ToString())

	child.Set(act, "score", value.Number(42))
	fmt.Printf("after child.score = 42: score = %s (written through the prototype's setter, not onto child)\n", object.Get(act, child, "score", child).ToString())
	fmt.Printf("child.HasOwnProperty(\"score\") = %v\n", child.HasOwnProperty(act, "score"))

	fmt.Println("child keys (enumerable, own + inherited):", child.GetKeys(act))

	child.DefineValue(act, "temp", value.Bool(true), attr.Empty())
	fmt.Printf("deleted temp = %v\n", child.Delete(act, "temp"))

	arr := object.NewArray(arena, nil)
	arr.SetArrayElement(act, 0, value.Str("a"))
	arr.SetArrayElement(act, 1, value.Str("b"))
	fmt.Printf("array length = %d, elements = %v\n", arr.Length(), renderValues(arr.Array()))

	reclaimed := arena.Collect()
	fmt.Printf("arena: %d cells live, %d reclaimed by collect\n", arena.Len(), reclaimed)

	return nil
}

// rootSet is a trivial gc.Tracer that just holds onto a fixed set of
// objects as GC roots, for objshell's own bookkeeping — the real
// activation stack plays this role in a full interpreter.
type rootSet struct {
	objects []object.Object
}

func (r *rootSet) Trace(visit func(*gc.Cell)) {
	for _, o := range r.objects {
		if t, ok := o.(gc.Traceable); ok {
			visit(t.GCCell())
		}
	}
}

func renderValues(vs []value.Value) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.ToString()
	}
	return out
}
