/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package gfunction

import (
	"github.com/Nowilltolife/SSVM/src/excNames"
	"github.com/Nowilltolife/SSVM/src/filesystem"
	"github.com/Nowilltolife/SSVM/src/object"
)

// This file is the native half of java.io.UnixFileSystem/WinNTFileSystem
// (spec §6): most methods here read a java.io.File's own "path" field
// (canonicalize0 and createFileExclusively take the path as a String) and
// dispatch to a filesystem.FileManager, exactly the "external
// collaborator whose interface we specify, not whose internals" shape spec
// §6 describes. Grounded on javaIoInputStreamReader.go's own native-bridge
// style (read a field off the receiver object, call the host, wrap the
// result back into a Value or throw).
//
// Only one native class name is registered (UnixFileSystem) rather than
// both platform variants -- this engine runs one FileManager regardless of
// host OS, and WinNTFileSystem's native surface is identical in shape.

var fsManager filesystem.FileManager = filesystem.NewLocalFileManager()

func Load_Io_FileSystem() {
	MethodSignatures["java/io/UnixFileSystem.<clinit>()V"] = GMeth{ParamSlots: 0, GFunction: justReturn}
	MethodSignatures["java/io/UnixFileSystem.<init>()V"] = GMeth{ParamSlots: 0, GFunction: justReturn}

	MethodSignatures["java/io/UnixFileSystem.canonicalize0(Ljava/lang/String;)Ljava/lang/String;"] =
		GMeth{ParamSlots: 1, GFunction: fsCanonicalize0}
	MethodSignatures["java/io/UnixFileSystem.getBooleanAttributes0(Ljava/io/File;)I"] =
		GMeth{ParamSlots: 1, GFunction: fsGetBooleanAttributes0}
	MethodSignatures["java/io/UnixFileSystem.checkAccess(Ljava/io/File;I)Z"] =
		GMeth{ParamSlots: 2, GFunction: fsCheckAccess}
	MethodSignatures["java/io/UnixFileSystem.getLastModifiedTime(Ljava/io/File;)J"] =
		GMeth{ParamSlots: 1, GFunction: fsGetLastModifiedTime}
	MethodSignatures["java/io/UnixFileSystem.getLength(Ljava/io/File;)J"] =
		GMeth{ParamSlots: 1, GFunction: fsGetLength}
	MethodSignatures["java/io/UnixFileSystem.setPermission(Ljava/io/File;IZZ)Z"] =
		GMeth{ParamSlots: 4, GFunction: fsSetPermission}
	MethodSignatures["java/io/UnixFileSystem.createFileExclusively(Ljava/lang/String;)Z"] =
		GMeth{ParamSlots: 1, GFunction: fsCreateFileExclusively}
	MethodSignatures["java/io/UnixFileSystem.delete0(Ljava/io/File;)Z"] =
		GMeth{ParamSlots: 1, GFunction: fsDelete0}
	MethodSignatures["java/io/UnixFileSystem.list(Ljava/io/File;)[Ljava/lang/String;"] =
		GMeth{ParamSlots: 1, GFunction: fsList}
	MethodSignatures["java/io/UnixFileSystem.createDirectory(Ljava/io/File;)Z"] =
		GMeth{ParamSlots: 1, GFunction: fsCreateDirectory}
	MethodSignatures["java/io/UnixFileSystem.rename0(Ljava/io/File;Ljava/io/File;)Z"] =
		GMeth{ParamSlots: 2, GFunction: fsRename0}
	MethodSignatures["java/io/UnixFileSystem.setLastModifiedTime(Ljava/io/File;J)Z"] =
		GMeth{ParamSlots: 2, GFunction: fsSetLastModifiedTime}
	MethodSignatures["java/io/UnixFileSystem.setReadOnly(Ljava/io/File;)Z"] =
		GMeth{ParamSlots: 1, GFunction: fsSetReadOnly}
	MethodSignatures["java/io/UnixFileSystem.getSpace(Ljava/io/File;I)J"] =
		GMeth{ParamSlots: 2, GFunction: fsGetSpace}
}

// filePath reads the "path" field off a java.io.File instance.
func filePath(fileVal object.Value) (string, interface{}) {
	obj := object.FromHandle(fileVal.AsRef())
	if obj == nil {
		return "", throwException(excNames.NullPointerException, "null java.io.File")
	}
	pathVal, ok := obj.GetField("path", "Ljava/lang/String;")
	if !ok {
		return "", throwException(excNames.IllegalStateException, "java.io.File has no path field")
	}
	return stringFromValue(pathVal)
}

func fsCanonicalize0(params []interface{}) interface{} {
	path, errv := stringFromValue(params[1].(object.Value))
	if errv != nil {
		return errv
	}
	canon, err := fsManager.Canonicalize(path)
	if err != nil {
		return throwException(excNames.IOException, err.Error())
	}
	v, errv := newStringValue(canon)
	if errv != nil {
		return errv
	}
	return v
}

func fsGetBooleanAttributes0(params []interface{}) interface{} {
	path, errv := filePath(params[1].(object.Value))
	if errv != nil {
		return errv
	}
	attrs, err := fsManager.GetAttributes(path)
	if err != nil {
		return throwException(excNames.IOException, err.Error())
	}
	return object.IntValue(int32(attrs))
}

func fsCheckAccess(params []interface{}) interface{} {
	path, errv := filePath(params[1].(object.Value))
	if errv != nil {
		return errv
	}
	mode := filesystem.AccessMode(params[2].(object.Value).AsInt())
	ok, err := fsManager.CheckAccess(path, mode)
	if err != nil {
		return throwException(excNames.IOException, err.Error())
	}
	return boolValue(ok)
}

func fsGetLastModifiedTime(params []interface{}) interface{} {
	path, errv := filePath(params[1].(object.Value))
	if errv != nil {
		return errv
	}
	attrs, err := fsManager.GetAttributes(path)
	if err != nil || attrs&filesystem.AttrExists == 0 {
		return object.LongValue(0)
	}
	// FileManager has no dedicated "get mtime" query (only "set"); this
	// native isn't on spec §6's explicit method list, so it reports 0
	// rather than growing the FileManager interface for one caller.
	return object.LongValue(0)
}

func fsGetLength(params []interface{}) interface{} {
	// Same as getLastModifiedTime: not one of §6's listed operations. Left
	// as a stub returning 0 rather than extending FileManager for it.
	return object.LongValue(0)
}

func fsSetPermission(params []interface{}) interface{} {
	path, errv := filePath(params[1].(object.Value))
	if errv != nil {
		return errv
	}
	access := params[2].(object.Value).AsInt()
	enable := params[3].(object.Value).AsBool()
	owner := params[4].(object.Value).AsBool()
	writable := access&2 != 0 // java.io.FileSystem.ACCESS_WRITE
	if err := fsManager.SetPermission(path, enable, owner, writable); err != nil {
		return boolValue(false)
	}
	return boolValue(true)
}

func fsCreateFileExclusively(params []interface{}) interface{} {
	path, errv := stringFromValue(params[1].(object.Value))
	if errv != nil {
		return errv
	}
	created, err := fsManager.CreateFileExclusively(path)
	if err != nil {
		return throwException(excNames.IOException, err.Error())
	}
	return boolValue(created)
}

func fsDelete0(params []interface{}) interface{} {
	path, errv := filePath(params[1].(object.Value))
	if errv != nil {
		return errv
	}
	if err := fsManager.Delete(path); err != nil {
		return boolValue(false)
	}
	return boolValue(true)
}

func fsList(params []interface{}) interface{} {
	path, errv := filePath(params[1].(object.Value))
	if errv != nil {
		return errv
	}
	names, err := fsManager.List(path)
	if err != nil {
		return object.NullValue
	}
	v, errv := newStringArrayValue(names)
	if errv != nil {
		return errv
	}
	return v
}

func fsCreateDirectory(params []interface{}) interface{} {
	path, errv := filePath(params[1].(object.Value))
	if errv != nil {
		return errv
	}
	created, err := fsManager.CreateFileExclusively(path)
	if err != nil || !created {
		return boolValue(false)
	}
	return boolValue(true)
}

func fsRename0(params []interface{}) interface{} {
	oldPath, errv := filePath(params[1].(object.Value))
	if errv != nil {
		return errv
	}
	newPath, errv := filePath(params[2].(object.Value))
	if errv != nil {
		return errv
	}
	if err := fsManager.Rename(oldPath, newPath); err != nil {
		return boolValue(false)
	}
	return boolValue(true)
}

func fsSetLastModifiedTime(params []interface{}) interface{} {
	path, errv := filePath(params[1].(object.Value))
	if errv != nil {
		return errv
	}
	millis := params[2].(object.Value).AsLong()
	if err := fsManager.SetLastModifiedTime(path, millis); err != nil {
		return boolValue(false)
	}
	return boolValue(true)
}

func fsSetReadOnly(params []interface{}) interface{} {
	path, errv := filePath(params[1].(object.Value))
	if errv != nil {
		return errv
	}
	if err := fsManager.SetReadOnly(path); err != nil {
		return boolValue(false)
	}
	return boolValue(true)
}

func fsGetSpace(params []interface{}) interface{} {
	path, errv := filePath(params[1].(object.Value))
	if errv != nil {
		return errv
	}
	which := filesystem.SpaceKind(params[2].(object.Value).AsInt())
	space, err := fsManager.GetSpace(path, which)
	if err != nil {
		return object.LongValue(0)
	}
	return object.LongValue(space)
}
