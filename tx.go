package swapchain

import (
	"reflect"

	"github.com/gorswap/swapchain/errors"
)

// Marshaller is anything that can be represented in binary.
//
// Marshal may validate the data before serializing it and unless you
// previously validated the struct, errors should be expected.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent supports Marshal and Unmarshal.
//
// This is separate from Marshaller, as Unmarshal almost always requires
// a pointer, while functions that only need to marshal bytes can use
// the Marshaller interface to accept non-pointers.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Msg is a message for the ledger to take an action (make a state
// transition). It is just the request and must be validated by the
// Handlers. All authentication information is in the wrapping Tx.
type Msg interface {
	Persistent

	// Validate makes sure basic rules are enforced upon input data
	// before any state is read or written.
	Validate() error

	// Path returns the message path used by the Router to locate the
	// proper Handler. Must be of the form "module/action".
	Path() string
}

// Tx represents the data sent from the user to the chain. It includes
// the actual message, along with information needed to authenticate the
// sender (cryptographic signatures) and anything else needed to pass
// through middleware.
type Tx interface {
	Persistent

	// GetMsg returns the action we wish to communicate.
	GetMsg() (Msg, error)
}

// TxDecoder can parse bytes into a Tx.
type TxDecoder func(txBytes []byte) (Tx, error)

// GetPath returns the path of the message, or (missing) if no message.
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg extracts the message from the transaction, ensures it is of
// the destination type and validates it. The result is written into the
// dest argument, which must be a non-nil pointer of the message type.
func LoadMsg(tx Tx, dest Msg) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "get message")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrEmpty, "message")
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	dval := reflect.ValueOf(dest)
	mval := reflect.ValueOf(msg)
	if dval.Kind() != reflect.Ptr || dval.IsNil() {
		return errors.Wrap(errors.ErrType, "destination must be a non-nil pointer")
	}
	if dval.Type() != mval.Type() {
		return errors.Wrapf(errors.ErrType, "want %T, got %T", dest, msg)
	}
	dval.Elem().Set(mval.Elem())
	return nil
}
