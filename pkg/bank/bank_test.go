package bank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikedotalmond/parameters/pkg/mapping"
	"github.com/mikedotalmond/parameters/pkg/parameter"
)

type recordingSubscriber struct {
	changes []string
}

func (r *recordingSubscriber) OnParameterChanged(c parameter.Control) {
	r.changes = append(r.changes, c.Name()+"="+c.String())
}

func newTestBank(t *testing.T) (*Bank, *parameter.Parameter[float64], *parameter.Parameter[int], *parameter.Parameter[bool]) {
	t.Helper()

	gain, err := parameter.New("gain", mapping.LawLinear, 0.0, 2.0)
	require.NoError(t, err)
	freq, err := parameter.New("freq", mapping.LawExponential, 20, 20000)
	require.NoError(t, err)
	mute, err := parameter.NewBool("mute", false, true)
	require.NoError(t, err)

	b := New("voice")
	require.NoError(t, b.Add(gain))
	require.NoError(t, b.Add(freq))
	require.NoError(t, b.Add(mute))
	return b, gain, freq, mute
}

func TestBankBasics(t *testing.T) {
	b, gain, _, _ := newTestBank(t)

	assert.Equal(t, "voice", b.Name())
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, []string{"gain", "freq", "mute"}, b.Names())

	c, err := b.Get("gain")
	require.NoError(t, err)
	assert.Same(t, gain, c)

	_, err = b.Get("nope")
	assert.ErrorIs(t, err, ErrParameterNotFound)

	controls := b.Controls()
	require.Len(t, controls, 3)
	assert.Equal(t, "mute", controls[2].Name())
}

func TestBankAddValidation(t *testing.T) {
	b, _, _, _ := newTestBank(t)

	dup, err := parameter.New("gain", mapping.LawLinear, 0.0, 1.0)
	require.NoError(t, err)
	assert.ErrorIs(t, b.Add(dup), ErrDuplicateName)

	anon, err := parameter.New("", mapping.LawLinear, 0.0, 1.0)
	require.NoError(t, err)
	assert.ErrorIs(t, b.Add(anon), ErrEmptyName)

	assert.Equal(t, 3, b.Len())
}

func TestBankSubscribers(t *testing.T) {
	b, gain, freq, mute := newTestBank(t)
	sub := &recordingSubscriber{}
	b.Subscribe(sub)
	b.Subscribe(sub)

	gain.SetValue(1)
	freq.SetNormalisedValue(1)
	mute.SetValue(true)
	mute.SetValue(true)

	assert.Equal(t, []string{"gain=1", "freq=20000", "mute=true"}, sub.changes)

	b.Unsubscribe(sub)
	gain.SetValue(2)
	assert.Len(t, sub.changes, 3)
}

func TestBankDirtyTracking(t *testing.T) {
	b, gain, _, mute := newTestBank(t)
	assert.Empty(t, b.DirtyNames())

	mute.SetValue(true)
	gain.SetValue(0.5)
	assert.Equal(t, []string{"gain", "mute"}, b.DirtyNames())

	b.ClearDirty()
	assert.Empty(t, b.DirtyNames())
}

func TestBankResetAll(t *testing.T) {
	b, gain, freq, mute := newTestBank(t)
	freq.SetDefault(440)
	gain.SetValue(1.5)
	mute.SetValue(true)

	assert.Equal(t, 2, b.ResetAll())
	assert.Equal(t, 0.0, gain.Value())
	assert.Equal(t, 440, freq.Value())
	assert.False(t, mute.Value())
	assert.Equal(t, 0, b.ResetAll())
}

func TestBankSnapshotRestore(t *testing.T) {
	b, gain, freq, _ := newTestBank(t)
	gain.SetValue(1)
	freq.SetNormalisedValue(0.5)

	snap := b.Snapshot()
	assert.Equal(t, map[string]float64{"gain": 0.5, "freq": 0.5, "mute": 0}, snap)

	b.ResetAll()
	snap["missing"] = 0.3
	err := b.Restore(snap)
	assert.ErrorIs(t, err, ErrParameterNotFound)
	assert.Equal(t, 1.0, gain.Value())
	assert.Equal(t, 632, freq.Value())
}

func TestBankRestoreOrder(t *testing.T) {
	b, _, _, _ := newTestBank(t)
	snap := map[string]float64{"mute": 1, "zeta": 0.1, "freq": 1, "gain": 1, "alpha": 0.2}

	for range 10 {
		b.ResetAll()
		sub := &recordingSubscriber{}
		b.Subscribe(sub)

		err := b.Restore(snap)
		b.Unsubscribe(sub)

		assert.Equal(t, []string{"gain=2", "freq=20000", "mute=true"}, sub.changes)
		require.Error(t, err)
		assert.Equal(t, `parameter not found: alpha
parameter not found: zeta`, err.Error())
	}
}

func TestBankRemove(t *testing.T) {
	b, gain, _, _ := newTestBank(t)
	sub := &recordingSubscriber{}
	b.Subscribe(sub)

	require.NoError(t, b.Remove("gain"))
	assert.ErrorIs(t, b.Remove("gain"), ErrParameterNotFound)
	assert.Equal(t, []string{"freq", "mute"}, b.Names())
	assert.Equal(t, 0, gain.ObserverCount())

	gain.SetValue(1)
	assert.Empty(t, sub.changes)
}

func TestBankClose(t *testing.T) {
	b, gain, freq, _ := newTestBank(t)
	sub := &recordingSubscriber{}
	b.Subscribe(sub)

	b.Close()
	assert.Equal(t, 0, gain.ObserverCount())
	assert.Equal(t, 0, freq.ObserverCount())

	gain.SetValue(1)
	assert.Empty(t, sub.changes)
	assert.Empty(t, b.DirtyNames())
}
