package process

import "testing"

// Only harmless PIDs are exercised: a real kill would need a child process
// group, which the PDF integration tests cover.
func TestKillTree_HarmlessPIDs(t *testing.T) {
	t.Parallel()

	for _, pid := range []int{-1, 0, 999999999} {
		KillTree(pid)
	}
}
