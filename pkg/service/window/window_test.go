package window_test

import (
	"fmt"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/edu-lab/mentor/pkg/domain/model"
	"github.com/edu-lab/mentor/pkg/domain/types"
	"github.com/edu-lab/mentor/pkg/service/window"
)

func TestWindowEvictsOldestFirst(t *testing.T) {
	m := window.New(3)

	for i := 1; i <= 4; i++ {
		m.Push("alice", "s1", model.Turn{
			Role: types.RoleUser,
			Text: fmt.Sprintf("T%d", i),
		})
	}

	got := m.Snapshot("alice", "s1")
	gt.Array(t, got).Length(3)
	gt.Value(t, got[0].Text).Equal("T2")
	gt.Value(t, got[1].Text).Equal("T3")
	gt.Value(t, got[2].Text).Equal("T4")
}

func TestWindowSnapshotOrderIsOldestFirst(t *testing.T) {
	m := window.New(10)

	m.Push("alice", "s1", model.Turn{Role: types.RoleUser, Text: "question"})
	m.Push("alice", "s1", model.Turn{Role: types.RoleTutor, Text: "answer"})

	got := m.Snapshot("alice", "s1")
	gt.Array(t, got).Length(2)
	gt.Value(t, got[0].Role).Equal(types.RoleUser)
	gt.Value(t, got[1].Role).Equal(types.RoleTutor)
}

func TestWindowSnapshotIsACopy(t *testing.T) {
	m := window.New(3)
	m.Push("alice", "s1", model.Turn{Role: types.RoleUser, Text: "original"})

	snap := m.Snapshot("alice", "s1")
	snap[0].Text = "mutated"

	again := m.Snapshot("alice", "s1")
	gt.Value(t, again[0].Text).Equal("original")
}

func TestWindowKeysAreIndependent(t *testing.T) {
	m := window.New(3)

	m.Push("alice", "s1", model.Turn{Role: types.RoleUser, Text: "alice s1"})
	m.Push("alice", "s2", model.Turn{Role: types.RoleUser, Text: "alice s2"})
	m.Push("bob", "s1", model.Turn{Role: types.RoleUser, Text: "bob s1"})

	gt.Array(t, m.Snapshot("alice", "s1")).Length(1)
	gt.Array(t, m.Snapshot("alice", "s2")).Length(1)
	gt.Array(t, m.Snapshot("bob", "s1")).Length(1)
	gt.Value(t, m.Snapshot("bob", "s1")[0].Text).Equal("bob s1")
}

func TestWindowSnapshotOfUnknownKeyIsEmpty(t *testing.T) {
	m := window.New(3)
	gt.Array(t, m.Snapshot("nobody", "nowhere")).Length(0)
}

func TestWindowSessionLockIsStablePerKey(t *testing.T) {
	m := window.New(3)

	a := m.SessionLock("alice", "s1")
	b := m.SessionLock("alice", "s1")
	c := m.SessionLock("alice", "s2")

	gt.Bool(t, a == b).True()
	gt.Bool(t, a == c).False()
}
