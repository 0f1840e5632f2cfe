package reader

import "github.com/coreos/pkg/dlopen"

import "C"

// ReadTypeInfo opens a built shared module and returns the embedded
// __ascent_types JSON blob.
func ReadTypeInfo(from string) (string, error) {
	handle, err := dlopen.GetHandle([]string{from})
	if err != nil {
		return "", err
	}

	sym, err := handle.GetSymbolPointer("__ascent_types")
	if err != nil {
		return "", err
	}

	str := C.GoString((*C.char)(sym))
	return str, nil
}
