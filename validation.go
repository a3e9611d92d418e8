package dhcppkt

import (
	"errors"
	"fmt"
)

type ValidateFlags uint64

const (
	validateReserved ValidateFlags = 1 << iota
	// ValidateAllowMultiErrors accumulates every error found instead of
	// stopping at the first one.
	ValidateAllowMultiErrors
	// ValidateStrictOptions rejects packets whose options region is not
	// terminated by an end option.
	ValidateStrictOptions
)

func (vf ValidateFlags) has(v ValidateFlags) bool {
	return vf&v == v
}

// Validator accumulates errors found while validating a DHCP packet.
// The zero value is ready for use and keeps only the first error.
type Validator struct {
	accum []error
	flags ValidateFlags
}

func (v *Validator) Flags() ValidateFlags {
	return v.flags
}

// Has reports whether all flags in f are set on the validator.
func (v *Validator) Has(f ValidateFlags) bool {
	return v.flags.has(f)
}

func (v *Validator) SetFlags(flags ValidateFlags) {
	v.flags = flags
}

func (v *Validator) ResetErr() {
	clear(v.accum)
	v.accum = v.accum[:0]
}

func (v *Validator) HasError() bool {
	if v.flags.has(validateReserved) {
		panic("reserved bit set")
	}
	return len(v.accum) != 0
}

func (v *Validator) Err() error {
	if len(v.accum) == 1 {
		return v.accum[0]
	} else if len(v.accum) == 0 {
		return nil
	}
	return errors.Join(v.accum...)
}

// ErrPop returns the accumulated error and resets the validator.
func (v *Validator) ErrPop() error {
	err := v.Err()
	v.ResetErr()
	return err
}

func (v *Validator) AddError(err error) {
	if err == nil {
		panic("error argument to AddError cannot be nil")
	} else if len(v.accum) != 0 && !v.flags.has(ValidateAllowMultiErrors) {
		return
	}
	v.accum = append(v.accum, err)
}

// AddBitPosErr adds an error located at a bit range of the packet.
func (v *Validator) AddBitPosErr(bitStart, bitLen int, err error) {
	if err == nil {
		panic("err argument to bitPosErr cannot be nil")
	} else if bitLen <= 0 {
		panic("bit length must be positive")
	} else if len(v.accum) != 0 && !v.flags.has(ValidateAllowMultiErrors) {
		return
	}
	// Allocated per error so errors returned by Err outlive ResetErr.
	v.accum = append(v.accum, &BitPosErr{BitStart: bitStart, BitLen: bitLen, Err: err})
}

type BitPosErr struct {
	BitStart int
	BitLen   int
	Err      error
}

func (bpe *BitPosErr) Error() string {
	return fmt.Sprintf("%s at bits %d..%d", bpe.Err.Error(), bpe.BitStart, bpe.BitStart+bpe.BitLen)
}

func (bpe *BitPosErr) Unwrap() error { return bpe.Err }
