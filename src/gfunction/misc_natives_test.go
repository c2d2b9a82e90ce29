/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package gfunction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nowilltolife/SSVM/src/globals"
	"github.com/Nowilltolife/SSVM/src/object"
)

func setupMiscNativesTestGlobals(t *testing.T) {
	t.Helper()
	Globals = globals.InitGlobals("misc-natives-test")
	Globals.FuncThrowException = func(name, msg string) {
		panic(name + ": " + msg)
	}
}

func TestThreadSleepWaitsApproximatelyTheRequestedDuration(t *testing.T) {
	setupMiscNativesTestGlobals(t)
	start := time.Now()
	result := threadSleep([]interface{}{object.LongValue(20)})
	elapsed := time.Since(start)
	assert.Nil(t, result)
	assert.GreaterOrEqual(t, elapsed, 20*time.Millisecond)
}

func TestThreadSleepRejectsNonLongArgument(t *testing.T) {
	setupMiscNativesTestGlobals(t)
	assert.Panics(t, func() {
		threadSleep([]interface{}{42})
	})
}

func TestHashMapHashIsStableForSameValue(t *testing.T) {
	setupMiscNativesTestGlobals(t)
	v := object.IntValue(7)
	r1 := hashMapHash([]interface{}{v})
	r2 := hashMapHash([]interface{}{v})
	h1, ok := r1.(object.Value)
	require.True(t, ok)
	h2, ok := r2.(object.Value)
	require.True(t, ok)
	assert.Equal(t, h1.AsInt(), h2.AsInt())
}

func TestHashMapHashOfIntAndLongWithSameBitsAgree(t *testing.T) {
	setupMiscNativesTestGlobals(t)
	intHash := hashMapHash([]interface{}{object.IntValue(7)}).(object.Value)
	longHash := hashMapHash([]interface{}{object.LongValue(7)}).(object.Value)
	assert.Equal(t, intHash.AsInt(), longHash.AsInt())
}

func TestHashMapHashOfNullIsZero(t *testing.T) {
	setupMiscNativesTestGlobals(t)
	result := hashMapHash([]interface{}{object.NullValue})
	v, ok := result.(object.Value)
	require.True(t, ok)
	assert.Equal(t, int32(0), v.AsInt())
}

func TestHashMapHashRejectsUnrecognizedParam(t *testing.T) {
	setupMiscNativesTestGlobals(t)
	assert.Panics(t, func() {
		hashMapHash([]interface{}{"not a value"})
	})
}

func TestStringBuilderIsLatin1AlwaysReportsTrue(t *testing.T) {
	result := isLatin1(nil)
	v, ok := result.(object.Value)
	require.True(t, ok)
	assert.Equal(t, int32(1), v.AsInt())
}

func TestLoadLangThreadRegistersSignatures(t *testing.T) {
	Load_Lang_Thread()
	_, ok := MethodSignatures["java/lang/Thread.sleep(J)V"]
	assert.True(t, ok)
	_, ok = MethodSignatures["java/lang/Thread.registerNatives()V"]
	assert.True(t, ok)
}

func TestLoadUtilHashMapRegistersSignatures(t *testing.T) {
	Load_Util_HashMap()
	_, ok := MethodSignatures["java/util/HashMap.hash(Ljava/lang/Object;)I"]
	assert.True(t, ok)
}

func TestLoadJdkInternalMiscScopedMemoryAccessRegistersSignatures(t *testing.T) {
	Load_Jdk_Internal_Misc_ScopedMemoryAccess()
	_, ok := MethodSignatures["jdk/internal/misc/ScopedMemoryAccess.<clinit>()V"]
	assert.True(t, ok)
	_, ok = MethodSignatures["jdk/internal/misc/ScopedMemoryAccess.registerNatives()V"]
	assert.True(t, ok)
}
