package limelight_test

import (
	"sync"

	"github.com/Ratio1/limelight_sdk_go/pkg/limelight"
)

type setCall struct {
	Key   string
	Value float64
}

// fakeTable records every key requested and every value written.
type fakeTable struct {
	mu     sync.Mutex
	values map[string]float64
	gets   []string
	sets   []setCall
}

func newFakeTable(seed map[string]float64) *fakeTable {
	values := make(map[string]float64, len(seed))
	for k, v := range seed {
		values[k] = v
	}
	return &fakeTable{values: values}
}

func (f *fakeTable) GetNumber(key string) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets = append(f.gets, key)
	return f.values[key]
}

func (f *fakeTable) SetNumber(key string, value float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets = append(f.sets, setCall{Key: key, Value: value})
	f.values[key] = value
}

func (f *fakeTable) calls() (gets []string, sets []setCall) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.gets...), append([]setCall(nil), f.sets...)
}

type fakeOpener struct {
	table  *fakeTable
	opened []string
	err    error
}

func (o *fakeOpener) Open(name string) (limelight.Table, error) {
	o.opened = append(o.opened, name)
	if o.err != nil {
		return nil, o.err
	}
	return o.table, nil
}
