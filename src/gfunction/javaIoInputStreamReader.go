/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package gfunction

import (
	"io"
	"os"
	"sync"

	"github.com/Nowilltolife/SSVM/src/excNames"
	"github.com/Nowilltolife/SSVM/src/memory"
	"github.com/Nowilltolife/SSVM/src/object"
)

func Load_Io_InputStreamReader() {

	MethodSignatures["java/io/InputStreamReader.<clinit>()V"] =
		GMeth{ParamSlots: 0, GFunction: justReturn}

	MethodSignatures["java/io/InputStreamReader.<init>(Ljava/io/InputStream;)V"] =
		GMeth{ParamSlots: 1, GFunction: inputStreamReaderInit}

	MethodSignatures["java/io/InputStreamReader.close()V"] =
		GMeth{ParamSlots: 0, GFunction: isrClose}

	MethodSignatures["java/io/InputStreamReader.read()I"] =
		GMeth{ParamSlots: 0, GFunction: isrReadOneChar}

	MethodSignatures["java/io/InputStreamReader.read([CII)I"] =
		GMeth{ParamSlots: 3, GFunction: isrReadCharBufferSubset}

	MethodSignatures["java/io/InputStreamReader.ready()Z"] =
		GMeth{ParamSlots: 0, GFunction: isrReady}

	// -----------------------------------------
	// Traps that do nothing but raise an error
	// -----------------------------------------

	MethodSignatures["java/io/InputStreamReader.<init>(Ljava/io/InputStream;Ljava/lang/String;)V"] =
		GMeth{ParamSlots: 2, GFunction: trapFunction}

	MethodSignatures["java/io/InputStreamReader.<init>(Ljava/io/InputStream;Ljava/nio/charset/Charset;)V"] =
		GMeth{ParamSlots: 2, GFunction: trapFunction}

	MethodSignatures["java/io/InputStreamReader.getEncoding()Ljava/lang/String;"] =
		GMeth{ParamSlots: 0, GFunction: trapFunction}

}

// openFiles associates a heap handle (an InputStream or InputStreamReader
// instance) with the host-side *os.File backing it: this engine's Object
// has no field kind for a raw host pointer, so an open file's handle lives
// in this side table instead, keyed by the same memory.Handle the VM
// already uses to identify the object. Populated by whatever native
// constructs the underlying InputStream (a FileInputStream bridge, not
// present in this slice); InputStreamReader only consumes it.
var (
	openFilesMu sync.Mutex
	openFiles   = make(map[memory.Handle]*os.File)
)

func fileFor(h memory.Handle) (*os.File, bool) {
	openFilesMu.Lock()
	defer openFilesMu.Unlock()
	f, ok := openFiles[h]
	return f, ok
}

func setFileFor(h memory.Handle, f *os.File) {
	openFilesMu.Lock()
	defer openFilesMu.Unlock()
	openFiles[h] = f
}

func clearFileFor(h memory.Handle) {
	openFilesMu.Lock()
	defer openFilesMu.Unlock()
	delete(openFiles, h)
}

// "java/io/InputStreamReader.<init>(Ljava/io/InputStream;)V"
func inputStreamReaderInit(params []interface{}) interface{} {
	this := params[0].(object.Value)
	in := params[1].(object.Value)
	f, ok := fileFor(in.AsRef())
	if !ok {
		return throwException(excNames.IOException, "InputStreamReader: underlying InputStream has no associated file")
	}
	setFileFor(this.AsRef(), f)
	return nil
}

// "java/io/InputStreamReader.close()V"
func isrClose(params []interface{}) interface{} {
	this := params[0].(object.Value)
	f, ok := fileFor(this.AsRef())
	if !ok {
		return throwException(excNames.IOException, "InputStreamReader.close: no associated file")
	}
	if err := f.Close(); err != nil {
		return throwException(excNames.IOException, err.Error())
	}
	clearFileFor(this.AsRef())
	return nil
}

// "java/io/InputStreamReader.read()I"
func isrReadOneChar(params []interface{}) interface{} {
	this := params[0].(object.Value)
	f, ok := fileFor(this.AsRef())
	if !ok {
		return throwException(excNames.IOException, "InputStreamReader.read: no associated file")
	}
	var buf [1]byte
	_, err := f.Read(buf[:])
	if err == io.EOF {
		return object.IntValue(-1)
	}
	if err != nil {
		return throwException(excNames.IOException, err.Error())
	}
	return object.IntValue(int32(buf[0]))
}

// "java/io/InputStreamReader.read([CII)I"
func isrReadCharBufferSubset(params []interface{}) interface{} {
	this := params[0].(object.Value)
	f, ok := fileFor(this.AsRef())
	if !ok {
		return throwException(excNames.IOException, "InputStreamReader.read: no associated file")
	}
	arr := object.ArrayFromHandle(params[1].(object.Value).AsRef())
	if arr == nil {
		return throwException(excNames.IOException, "InputStreamReader.read: null or invalid char buffer")
	}
	offset := int(params[2].(object.Value).AsInt())
	length := int(params[3].(object.Value).AsInt())
	if length == 0 {
		return object.IntValue(0)
	}
	if length < 0 || offset < 0 || length > arr.Length()-offset {
		return throwException(excNames.ArrayIndexOutOfBoundsException, "InputStreamReader.read: offset/length out of bounds")
	}

	raw := make([]byte, length)
	n, err := f.Read(raw)
	if err == io.EOF {
		return object.IntValue(-1)
	}
	if err != nil {
		return throwException(excNames.IOException, err.Error())
	}
	for i := 0; i < n; i++ {
		arr.Set(offset+i, object.IntValue(int32(raw[i])))
	}
	return object.IntValue(int32(n))
}

// "java/io/InputStreamReader.ready()Z"
func isrReady(params []interface{}) interface{} {
	this := params[0].(object.Value)
	f, ok := fileFor(this.AsRef())
	if !ok {
		return object.IntValue(0)
	}
	if _, err := f.Stat(); err != nil {
		return object.IntValue(0)
	}
	return object.IntValue(1)
}

// trapFunction rejects overloads this VM does not implement.
func trapFunction(params []interface{}) interface{} {
	return throwException(excNames.IllegalArgumentException, "unsupported InputStreamReader overload")
}
