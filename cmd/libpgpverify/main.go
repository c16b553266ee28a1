// Command libpgpverify builds a C shared library that exports
// pgp_verify_detached:
//
//	go build -buildmode=c-shared -o libpgpverify.so ./cmd/libpgpverify
package main

/*
#include <stddef.h>
#include <stdint.h>
*/
import "C"

import (
	"unsafe"

	"github.com/pgpverify/go-pgpverify/openpgp"
)

// pgp_verify_detached returns the result code of the detached signature
// over data. The buffers are copied and not retained after return. A NULL
// pointer is an empty input.
//
//export pgp_verify_detached
func pgp_verify_detached(
	keyringPtr *C.uint8_t, keyringLen C.size_t,
	signaturePtr *C.uint8_t, signatureLen C.size_t,
	dataPtr *C.uint8_t, dataLen C.size_t,
) C.int {
	return C.int(openpgp.VerifyDetachedCode(
		goBytes(keyringPtr, keyringLen),
		goBytes(signaturePtr, signatureLen),
		goBytes(dataPtr, dataLen),
	))
}

func goBytes(p *C.uint8_t, n C.size_t) []byte {
	if p == nil || n == 0 {
		return nil
	}
	return append([]byte(nil), unsafe.Slice((*byte)(unsafe.Pointer(p)), int(n))...)
}

func main() {}
