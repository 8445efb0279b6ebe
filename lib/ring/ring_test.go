package ring

import (
	"fmt"
	"testing"
)

// TestEmptyRing tests that a lookup on an empty ring reports no owner
func TestEmptyRing(t *testing.T) {
	r := New(0)

	if node, ok := r.GetNode("anything"); ok {
		t.Errorf("Empty ring returned owner %q", node)
	}

	if r.Size() != 0 {
		t.Errorf("Empty ring should have 0 points, has %d", r.Size())
	}
}

// TestAddNodeCreatesReplicaPoints tests that each node contributes exactly
// numReplicas virtual points
func TestAddNodeCreatesReplicaPoints(t *testing.T) {
	r := New(50)
	r.AddNode("A")

	if r.Size() != 50 {
		t.Errorf("Expected 50 points after adding one node, got %d", r.Size())
	}

	r.AddNode("B")
	if r.Size() != 100 {
		t.Errorf("Expected 100 points after adding two nodes, got %d", r.Size())
	}
}

// TestDeterministicLookup tests that repeated lookups with no mutation in
// between always return the same member node
func TestDeterministicLookup(t *testing.T) {
	r := New(0)
	members := map[string]bool{"A": true, "B": true, "C": true}
	for name := range members {
		r.AddNode(name)
	}

	for i := 0; i < 100; i++ {
		key := fmt.Sprintf("key-%d", i)

		first, ok := r.GetNode(key)
		if !ok {
			t.Fatalf("Lookup for %q failed on a populated ring", key)
		}
		if !members[first] {
			t.Fatalf("Lookup for %q returned non-member %q", key, first)
		}

		for j := 0; j < 10; j++ {
			again, _ := r.GetNode(key)
			if again != first {
				t.Fatalf("Lookup for %q not deterministic: %q then %q", key, first, again)
			}
		}
	}
}

// TestRemoveNodeRedistribution tests that after removing a node its keys map
// only to the remaining members and nothing else moved
func TestRemoveNodeRedistribution(t *testing.T) {
	r := New(0)
	r.AddNode("A")
	r.AddNode("B")
	r.AddNode("C")

	// record ownership before removal
	const numKeys = 1000
	before := make(map[string]string, numKeys)
	for i := 0; i < numKeys; i++ {
		key := fmt.Sprintf("key-%d", i)
		node, _ := r.GetNode(key)
		before[key] = node
	}

	r.RemoveNode("C")

	for key, prev := range before {
		node, ok := r.GetNode(key)
		if !ok {
			t.Fatalf("Lookup for %q failed after removal", key)
		}
		if node == "C" {
			t.Fatalf("Key %q still maps to removed node C", key)
		}

		// the load-balance property: keys not owned by C must not move
		if prev != "C" && node != prev {
			t.Errorf("Key %q moved from %q to %q although C never owned it", key, prev, node)
		}
	}
}

// TestRemoveNodeRestoresPointCount tests that removal deletes exactly the
// points the matching add created
func TestRemoveNodeRestoresPointCount(t *testing.T) {
	r := New(0)
	r.AddNode("A")
	sizeA := r.Size()

	r.AddNode("B")
	r.RemoveNode("B")

	if r.Size() != sizeA {
		t.Errorf("Expected %d points after add/remove of B, got %d", sizeA, r.Size())
	}
}
