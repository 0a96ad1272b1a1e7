package abi

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cast"
)

var bigIntType = reflect.TypeOf(&big.Int{})

// maxExponent bounds the decimal exponent of a JSON number. Larger exponents cannot fit a 256 bit
// integer anyway.
const maxExponent = 100

// CoerceArgs converts loosely typed values into the Go types go-ethereum expects when packing
// args. Values are matched positionally and their count must equal the number of arguments.
func CoerceArgs(args abi.Arguments, values ...any) ([]any, error) {
	if len(values) != len(args) {
		return nil, fmt.Errorf("expected %d arguments, got %d", len(args), len(values))
	}

	out := make([]any, len(values))
	for i, arg := range args {
		v, err := CoerceArg(arg.Type, values[i])
		if err != nil {
			return nil, fmt.Errorf("argument %d (%s %s): %w", i, arg.Type.String(), arg.Name, err)
		}
		out[i] = v
	}

	return out, nil
}

// CoerceArg converts v into the Go representation of t.
func CoerceArg(t abi.Type, v any) (any, error) {
	switch t.T {
	case abi.AddressTy:
		return toAddress(v)
	case abi.UintTy, abi.IntTy:
		n, err := toBigInt(v)
		if err != nil {
			return nil, err
		}

		return fitInteger(t, n)
	case abi.StringTy:
		return cast.ToStringE(v)
	case abi.BoolTy:
		return cast.ToBoolE(v)
	case abi.BytesTy:
		return toBytes(v)
	case abi.FixedBytesTy:
		b, err := toBytes(v)
		if err != nil {
			return nil, err
		}
		if len(b) != t.Size {
			return nil, fmt.Errorf("expected %d bytes, got %d", t.Size, len(b))
		}
		arr := reflect.New(t.GetType()).Elem()
		reflect.Copy(arr, reflect.ValueOf(b))

		return arr.Interface(), nil
	default:
		return nil, fmt.Errorf("unsupported argument type %s", t.String())
	}
}

func toAddress(v any) (common.Address, error) {
	if addr, ok := v.(common.Address); ok {
		return addr, nil
	}

	s, err := cast.ToStringE(v)
	if err != nil {
		return common.Address{}, err
	}
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid address %q", s)
	}

	return common.HexToAddress(s), nil
}

func toBigInt(v any) (*big.Int, error) {
	switch x := v.(type) {
	case *big.Int:
		if x == nil {
			return nil, errors.New("nil integer")
		}

		return new(big.Int).Set(x), nil
	case json.Number:
		return ParseNumber(x)
	case string:
		return parseBigInt(x)
	case float64:
		if x != math.Trunc(x) {
			return nil, fmt.Errorf("non-integral value %v", x)
		}
	}

	i, err := cast.ToInt64E(v)
	if err != nil {
		return nil, err
	}

	return big.NewInt(i), nil
}

// ParseNumber parses a JSON number holding an integer. Every JSON spelling of an integer is
// accepted, including 7.0 and 1e2.
func ParseNumber(n json.Number) (*big.Int, error) {
	s := strings.TrimSpace(n.String())
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		exp, err := strconv.Atoi(s[i+1:])
		if err != nil || exp > maxExponent || exp < -maxExponent {
			return nil, fmt.Errorf("invalid integer %q", s)
		}
	}

	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", s)
	}
	if !r.IsInt() {
		return nil, fmt.Errorf("non-integral value %s", s)
	}

	return new(big.Int).Set(r.Num()), nil
}

func parseBigInt(s string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(strings.TrimSpace(s), 0)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", s)
	}

	return n, nil
}

// fitInteger range checks n against t and returns it as the sized Go integer go-ethereum packs
// for 8, 16, 32 and 64 bit types, or as *big.Int for anything wider.
func fitInteger(t abi.Type, n *big.Int) (any, error) {
	var lo, hi *big.Int
	if t.T == abi.UintTy {
		lo = new(big.Int)
		hi = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(t.Size)), big.NewInt(1))
	} else {
		hi = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(t.Size-1)), big.NewInt(1))
		lo = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), uint(t.Size-1)))
	}
	if n.Cmp(lo) < 0 || n.Cmp(hi) > 0 {
		return nil, fmt.Errorf("value %s out of range for %s", n.String(), t.String())
	}

	goType := t.GetType()
	if goType == bigIntType {
		return n, nil
	}

	rv := reflect.New(goType).Elem()
	if t.T == abi.UintTy {
		rv.SetUint(n.Uint64())
	} else {
		rv.SetInt(n.Int64())
	}

	return rv.Interface(), nil
}

func toBytes(v any) ([]byte, error) {
	switch x := v.(type) {
	case []byte:
		return x, nil
	case hexutil.Bytes:
		return x, nil
	case string:
		return hexutil.Decode(x)
	default:
		return nil, fmt.Errorf("cannot convert %T to bytes", v)
	}
}
