// Package mocks holds testify mocks for signal observers, laid out the way
// mockery v2 would generate them from .mockery.yaml.
package mocks

import mock "github.com/stretchr/testify/mock"

// MockObserver is an autogenerated mock type for the Observer type
type MockObserver[P interface{}] struct {
	mock.Mock
}

type MockObserver_Expecter[P interface{}] struct {
	mock *mock.Mock
}

func (_m *MockObserver[P]) EXPECT() *MockObserver_Expecter[P] {
	return &MockObserver_Expecter[P]{mock: &_m.Mock}
}

// OnChanged provides a mock function with given fields: payload
func (_m *MockObserver[P]) OnChanged(payload P) {
	_m.Called(payload)
}

// MockObserver_OnChanged_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'OnChanged'
type MockObserver_OnChanged_Call[P interface{}] struct {
	*mock.Call
}

// OnChanged is a helper method to define mock.On call
//   - payload P
func (_e *MockObserver_Expecter[P]) OnChanged(payload interface{}) *MockObserver_OnChanged_Call[P] {
	return &MockObserver_OnChanged_Call[P]{Call: _e.mock.On("OnChanged", payload)}
}

func (_c *MockObserver_OnChanged_Call[P]) Run(run func(payload P)) *MockObserver_OnChanged_Call[P] {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(P))
	})
	return _c
}

func (_c *MockObserver_OnChanged_Call[P]) Return() *MockObserver_OnChanged_Call[P] {
	_c.Call.Return()
	return _c
}

func (_c *MockObserver_OnChanged_Call[P]) RunAndReturn(run func(P)) *MockObserver_OnChanged_Call[P] {
	_c.Run(run)
	return _c
}

// NewMockObserver creates a new instance of MockObserver. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockObserver[P interface{}](t interface {
	mock.TestingT
	Cleanup(func())
}) *MockObserver[P] {
	mock := &MockObserver[P]{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
