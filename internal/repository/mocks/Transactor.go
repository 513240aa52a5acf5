package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"
)

// Transactor is a mock type for the Transactor type.
// Unless an expectation overrides it, WithinTransaction just runs fn.
type Transactor struct {
	mock.Mock
}

// WithinTransaction provides a mock function with given fields: ctx, fn
func (_m *Transactor) WithinTransaction(ctx context.Context, fn func(context.Context) error) error {
	ret := _m.Called(ctx, fn)
	if rf, ok := ret.Get(0).(func(context.Context, func(context.Context) error) error); ok {
		return rf(ctx, fn)
	}
	return ret.Error(0)
}

// PassThrough makes WithinTransaction call fn with the context it was given.
func (_m *Transactor) PassThrough() *mock.Call {
	return _m.On("WithinTransaction", mock.Anything, mock.Anything).
		Return(func(ctx context.Context, fn func(context.Context) error) error { return fn(ctx) })
}
