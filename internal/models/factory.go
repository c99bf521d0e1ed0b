package models

import "fmt"

// Factory constructs entities for a fixed storage mode. It is built once at
// startup from configuration and passed to whoever needs to create records.
type Factory struct {
	mode        StorageMode
	initializer Initializer
}

// NewFactory returns a factory for mode. A nil initializer selects NewDefaultInitializer.
func NewFactory(mode StorageMode, initializer Initializer) *Factory {
	if initializer == nil {
		initializer = NewDefaultInitializer()
	}
	return &Factory{mode: mode, initializer: initializer}
}

// Mode returns the storage mode the factory was configured with.
func (f *Factory) Mode() StorageMode {
	return f.mode
}

// NewTransaction allocates a zeroed Transaction and forwards args unchanged to the initializer.
func (f *Factory) NewTransaction(args ...any) (*Transaction, error) {
	t := &Transaction{}
	if err := f.initializer.Init(t, args...); err != nil {
		return nil, err
	}
	return t, nil
}

// New builds an entity of the named class.
func (f *Factory) New(className string, args ...any) (Entity, error) {
	switch className {
	case TransactionClass:
		t, err := f.NewTransaction(args...)
		if err != nil {
			return nil, err
		}
		return t, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownClass, className)
}
