// Package main provides C-compatible exports for the vox library.
// Build with: go build -buildmode=c-shared -o vox.dll
package main

/*
#include <stdlib.h>
#include <stdint.h>

// Result structure for operations that return data
typedef struct {
    char* data;
    int   data_len;
    char* error;
} VoxResult;
*/
import "C"

import (
	"bytes"
	"fmt"
	"unsafe"

	"github.com/logicossoftware/go-vox"
	"github.com/logicossoftware/go-vox/internal/report"
)

func main() {}

// VoxVersion returns the .vox file version written by this library.
//
//export VoxVersion
func VoxVersion() C.uint32_t {
	return C.uint32_t(vox.Version150)
}

// VoxFreeResult frees memory allocated by other Vox functions.
// Must be called to avoid memory leaks.
//
//export VoxFreeResult
func VoxFreeResult(result C.VoxResult) {
	if result.data != nil {
		C.free(unsafe.Pointer(result.data))
	}
	if result.error != nil {
		C.free(unsafe.Pointer(result.error))
	}
}

// VoxFreeString frees a C string allocated by Go.
//
//export VoxFreeString
func VoxFreeString(s *C.char) {
	if s != nil {
		C.free(unsafe.Pointer(s))
	}
}

func makeResult(data []byte) C.VoxResult {
	var result C.VoxResult
	if len(data) > 0 {
		result.data = (*C.char)(C.CBytes(data))
		result.data_len = C.int(len(data))
	}
	return result
}

func makeError(err error) C.VoxResult {
	var result C.VoxResult
	result.error = C.CString(err.Error())
	return result
}

func parse(data *C.char, dataLen C.int) (*vox.Scene, error) {
	return vox.Parse(C.GoBytes(unsafe.Pointer(data), dataLen))
}

// VoxSummarize decodes a .vox file and returns a summary of its models,
// layers, materials and bounds.
// Parameters:
//   - data: pointer to .vox file bytes, optionally zip/zstd/lz4 wrapped
//   - dataLen: length of the data
//   - format: "json", "yaml" or "cbor"; NULL means JSON
//
// Returns VoxResult with the encoded summary or error. Call VoxFreeResult when done.
//
//export VoxSummarize
func VoxSummarize(data *C.char, dataLen C.int, format *C.char) C.VoxResult {
	scene, err := parse(data, dataLen)
	if err != nil {
		return makeError(err)
	}
	f := "json"
	if format != nil {
		f = C.GoString(format)
	}
	var buf bytes.Buffer
	if err := report.Write(&buf, f, report.Summarize(scene)); err != nil {
		return makeError(err)
	}
	return makeResult(buf.Bytes())
}

// VoxConvert decodes a .vox file and writes it again.
// Parameters:
//   - data: pointer to .vox file bytes
//   - dataLen: length of the data
//   - compression: output envelope (0=None, 1=ZIP, 2=ZSTD, 3=LZ4, 4=Brotli)
//
// Returns VoxResult with encoded data or error. Call VoxFreeResult when done.
//
//export VoxConvert
func VoxConvert(data *C.char, dataLen C.int, compression C.uint8_t) C.VoxResult {
	scene, err := parse(data, dataLen)
	if err != nil {
		return makeError(err)
	}
	var buf bytes.Buffer
	if err := vox.Encode(&buf, scene, vox.WithWriteCompression(vox.Compression(compression))); err != nil {
		return makeError(err)
	}
	return makeResult(buf.Bytes())
}

// VoxExtractModel returns model index as a standalone uncompressed .vox
// file sharing the source palette.
// Call VoxFreeResult when done.
//
//export VoxExtractModel
func VoxExtractModel(data *C.char, dataLen C.int, index C.int) C.VoxResult {
	scene, err := parse(data, dataLen)
	if err != nil {
		return makeError(err)
	}
	if index < 0 || int(index) >= len(scene.Models) {
		return makeError(fmt.Errorf("model %d not found: file has %d models", int(index), len(scene.Models)))
	}
	out := vox.NewScene()
	out.Palette = scene.Palette
	out.Models = []vox.Model{scene.Models[index]}
	out.Graph.Children = []vox.SceneNode{vox.NewShape(0)}
	b, err := vox.Serialize(out)
	if err != nil {
		return makeError(err)
	}
	return makeResult(b)
}

// VoxValidate decodes a .vox file and checks its scene.
// Returns NULL on success, or an error message string on failure.
// Call VoxFreeString on the result if non-NULL.
//
//export VoxValidate
func VoxValidate(data *C.char, dataLen C.int) *C.char {
	scene, err := parse(data, dataLen)
	if err == nil {
		err = scene.Validate()
	}
	if err != nil {
		return C.CString(err.Error())
	}
	return nil
}

// VoxGetModelCount returns the number of models in a .vox file.
// Returns -1 on error.
//
//export VoxGetModelCount
func VoxGetModelCount(data *C.char, dataLen C.int) C.int {
	scene, err := parse(data, dataLen)
	if err != nil {
		return -1
	}
	return C.int(len(scene.Models))
}

// VoxGetVoxelCount returns the number of voxels placed by the scene graph,
// counting every instance. Returns -1 on error.
//
//export VoxGetVoxelCount
func VoxGetVoxelCount(data *C.char, dataLen C.int) C.int64_t {
	scene, err := parse(data, dataLen)
	if err != nil {
		return -1
	}
	return C.int64_t(scene.VoxelCount())
}
