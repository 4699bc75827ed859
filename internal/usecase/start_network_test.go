package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interlab-org/icx-cli/internal/domain"
)

func TestStartNetwork_AllChildrenUp(t *testing.T) {
	h := newHarness()

	result, err := h.start.Execute(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Attached)
	assert.Equal(t, domain.NetworkUp, result.Instance.State)
	assert.Len(t, result.Instance.Handles, 3)
	assert.Equal(t, 3, h.world.spawnCalls)

	status, err := h.status.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.NetworkUp, status.State)
	for _, child := range status.Children {
		assert.Equal(t, domain.ProcessReady, child.Status.State, "child %s", child.Name)
	}
}

func TestStartNetwork_AttachesToRunningInstance(t *testing.T) {
	h := newHarness()

	_, err := h.start.Execute(context.Background())
	require.NoError(t, err)
	spawnsAfterFirst := h.world.spawnCalls

	result, err := h.start.Execute(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Attached)
	assert.Equal(t, domain.NetworkUp, result.Instance.State)
	assert.Equal(t, spawnsAfterFirst, h.world.spawnCalls, "attaching must not spawn anything")
}

func TestStartNetwork_PartiallyLiveInstanceIsBusy(t *testing.T) {
	h := newHarness()

	_, err := h.start.Execute(context.Background())
	require.NoError(t, err)

	// one child dies externally, leaving a half-alive instance
	h.world.mu.Lock()
	delete(h.world.live, "hermes")
	h.world.mu.Unlock()

	_, err = h.start.Execute(context.Background())
	var busy *domain.ResourceBusyError
	require.ErrorAs(t, err, &busy)
}

func TestStartNetwork_ChainFailureRollsBackSiblings(t *testing.T) {
	h := newHarness()
	cause := errors.New("bind: address already in use")
	h.world.failSpawn["gaia"] = &domain.SpawnFailureError{Child: "gaia", Err: cause}

	_, err := h.start.Execute(context.Background())

	var partial *domain.PartialStartFailureError
	require.ErrorAs(t, err, &partial)
	assert.Contains(t, partial.Failed, "gaia")
	assert.Contains(t, partial.Succeeded, "neutron")
	assert.ErrorIs(t, partial.Cause, cause)

	// rollback completed: no live children remain
	assert.Empty(t, h.world.liveNames())
}

func TestStartNetwork_RelayerTimeoutRollsBackChains(t *testing.T) {
	h := newHarness()
	h.world.failSpawn["hermes"] = &domain.ReadinessTimeoutError{Child: "hermes", Timeout: 0}

	_, err := h.start.Execute(context.Background())

	var partial *domain.PartialStartFailureError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, []string{"hermes"}, partial.Failed)
	assert.ElementsMatch(t, []string{"neutron", "gaia"}, partial.Succeeded)
	assert.Empty(t, h.world.liveNames(), "chains must be stopped after relayer failure")
}

func TestStartNetwork_RollbackErrorsAreWarningsNotCause(t *testing.T) {
	h := newHarness()
	cause := errors.New("spawn exploded")
	h.world.failSpawn["hermes"] = &domain.SpawnFailureError{Child: "hermes", Err: cause}
	h.world.failStop["neutron"] = errors.New("kill: permission denied")

	_, err := h.start.Execute(context.Background())

	var partial *domain.PartialStartFailureError
	require.ErrorAs(t, err, &partial)
	// the original failure is never masked by rollback problems
	assert.ErrorIs(t, partial.Cause, cause)
	require.Len(t, partial.Warnings, 1)
	assert.Equal(t, "neutron", partial.Warnings[0].Child)
}

func TestStopNetwork_Idempotent(t *testing.T) {
	h := newHarness()

	_, err := h.start.Execute(context.Background())
	require.NoError(t, err)

	result, err := h.stop.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.NetworkDown, result.State)
	assert.Len(t, result.Stopped, 3)

	// second stop: still Down, no error
	result, err = h.stop.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.NetworkDown, result.State)
	assert.Empty(t, result.Stopped)
}

func TestStopNetwork_RelayersStopBeforeChains(t *testing.T) {
	h := newHarness()

	_, err := h.start.Execute(context.Background())
	require.NoError(t, err)

	var order []string
	h.stop = NewStopNetwork(h.cfg, orderRecordingSupervisor{h.supervisor, &order}, h.store, NopSink{}, testLogger())

	_, err = h.stop.Execute(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"hermes", "gaia", "neutron"}, order)
}

func TestStopNetwork_StopErrorsBecomeWarnings(t *testing.T) {
	h := newHarness()
	_, err := h.start.Execute(context.Background())
	require.NoError(t, err)

	h.world.failStop["gaia"] = errors.New("no such process")

	result, err := h.stop.Execute(context.Background())
	require.NoError(t, err, "stop always reaches Down")
	assert.Equal(t, domain.NetworkDown, result.State)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "gaia", result.Warnings[0].Child)
}

func TestNetworkStatus_DownAndDegraded(t *testing.T) {
	h := newHarness()

	status, err := h.status.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.NetworkDown, status.State)
	assert.Len(t, status.Children, 3)

	_, err = h.start.Execute(context.Background())
	require.NoError(t, err)

	h.world.mu.Lock()
	delete(h.world.live, "gaia")
	h.world.mu.Unlock()

	status, err = h.status.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.NetworkFailed, status.State, "partially-up is not a valid rest state")
}

func TestCleanState_RefusedWhileUp(t *testing.T) {
	h := newHarness()
	_, err := h.start.Execute(context.Background())
	require.NoError(t, err)

	_, err = h.clean.Execute(context.Background(), CleanStateParams{Scope: domain.CleanStateOnly})
	var busy *domain.ResourceBusyError
	require.ErrorAs(t, err, &busy)
	assert.Empty(t, h.store.cleaned, "nothing may be removed when refused")
}

func TestCleanState_Scopes(t *testing.T) {
	h := newHarness()
	h.store.cleanPaths = []string{"/tmp/icx-test/.icx/state/neutron"}

	result, err := h.clean.Execute(context.Background(), CleanStateParams{Scope: domain.CleanStateAndArtifacts})
	require.NoError(t, err)
	assert.Equal(t, domain.CleanStateAndArtifacts, result.Scope)
	assert.Equal(t, []domain.CleanScope{domain.CleanStateAndArtifacts}, h.store.cleaned)
	assert.Len(t, result.Removed, 1)
}

// orderRecordingSupervisor wraps the fake supervisor to record stop order
type orderRecordingSupervisor struct {
	inner *fakeSupervisor
	order *[]string
}

func (s orderRecordingSupervisor) Spawn(ctx context.Context, spec domain.SpawnSpec) (*domain.ProcessHandle, error) {
	return s.inner.Spawn(ctx, spec)
}

func (s orderRecordingSupervisor) Stop(ctx context.Context, handle *domain.ProcessHandle, grace time.Duration) error {
	*s.order = append(*s.order, handle.Name)
	return s.inner.Stop(ctx, handle, grace)
}

func (s orderRecordingSupervisor) Status(ctx context.Context, handle *domain.ProcessHandle) domain.ProcessStatus {
	return s.inner.Status(ctx, handle)
}
