/*
 * MIT License
 *
 * Copyright (c) 2022-2025  Arsene Tochemey Gandote
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package log

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZap(t *testing.T) {
	t.Run("With Debug level", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(DebugLevel, buffer)
		require.Equal(t, DebugLevel, logger.LogLevel())
		require.True(t, logger.Enabled(DebugLevel))

		logger.Debugf("waiter %s expired", "w-1")
		msg, err := extractMessage(buffer.Bytes())
		require.NoError(t, err)
		assert.Equal(t, "waiter w-1 expired", msg)

		lvl, err := extractLevel(buffer.Bytes())
		require.NoError(t, err)
		assert.Equal(t, DebugLevel.String(), lvl)
	})
	t.Run("With Info level", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		require.Equal(t, InfoLevel, logger.LogLevel())

		logger.Debug("hidden")
		require.Empty(t, buffer.String())

		logger.Info("mailbox started")
		msg, err := extractMessage(buffer.Bytes())
		require.NoError(t, err)
		assert.Equal(t, "mailbox started", msg)

		lvl, err := extractLevel(buffer.Bytes())
		require.NoError(t, err)
		assert.Equal(t, InfoLevel.String(), lvl)
	})
	t.Run("With Warning level", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(WarningLevel, buffer)
		require.Equal(t, WarningLevel, logger.LogLevel())

		logger.Infof("hidden %d", 1)
		require.Empty(t, buffer.String())

		logger.Warn("slow receiver")
		lvl, err := extractLevel(buffer.Bytes())
		require.NoError(t, err)
		assert.Equal(t, WarningLevel.String(), lvl)
	})
	t.Run("With Error level", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(ErrorLevel, buffer)
		require.Equal(t, ErrorLevel, logger.LogLevel())

		logger.Warnf("hidden %d", 1)
		require.Empty(t, buffer.String())

		logger.Errorf("failed: %s", "boom")
		msg, err := extractMessage(buffer.Bytes())
		require.NoError(t, err)
		assert.Equal(t, "failed: boom", msg)
	})
	t.Run("With level changed at runtime", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(ErrorLevel, buffer)
		derived := logger.With("mailbox", "orders")

		derived.Info("hidden")
		require.Empty(t, buffer.String())

		logger.SetLevel(DebugLevel)
		assert.Equal(t, DebugLevel, logger.LogLevel())
		assert.True(t, derived.Enabled(DebugLevel))

		derived.Info("visible")
		msg, err := extractMessage(buffer.Bytes())
		require.NoError(t, err)
		assert.Equal(t, "visible", msg)
	})
	t.Run("With outputs and flush", func(t *testing.T) {
		file, err := os.CreateTemp(t.TempDir(), "log")
		require.NoError(t, err)
		defer file.Close()

		logger := NewZap(InfoLevel, file, os.Stdout)
		logger.Info("flushed")
		require.NoError(t, logger.Flush())

		content, err := os.ReadFile(file.Name())
		require.NoError(t, err)
		assert.Contains(t, string(content), "flushed")
	})
}

func TestLogWith(t *testing.T) {
	t.Run("With structured fields", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		logger.With("mailbox", "orders", "waiter", "w-1").Info("registered")

		var m map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(buffer.Bytes(), &m))
		require.Contains(t, m, "mailbox")
		require.Contains(t, m, "waiter")
	})
	t.Run("With no fields returns same logger", func(t *testing.T) {
		logger := NewZap(InfoLevel, io.Discard)
		assert.Equal(t, Logger(logger), logger.With())
		assert.Equal(t, Logger(logger), logger.With(42, "ignored"))
	})
	t.Run("With orphan key dropped", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		logger.With("a", 1, "orphan").Info("msg")

		var m map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(buffer.Bytes(), &m))
		require.Contains(t, m, "a")
		require.NotContains(t, m, "orphan")
	})
}

func TestLevel(t *testing.T) {
	assert.Equal(t, "debug", DebugLevel.String())
	assert.Equal(t, "warn", WarningLevel.String())
	assert.Equal(t, "invalid", Level(42).String())

	assert.Equal(t, DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, InfoLevel, ParseLevel(""))
	assert.Equal(t, WarningLevel, ParseLevel("warning"))
	assert.Equal(t, ErrorLevel, ParseLevel(" error "))
	assert.Equal(t, PanicLevel, ParseLevel("panic"))
	assert.Equal(t, InvalidLevel, ParseLevel("verbose"))
}

func TestDiscardLogger(t *testing.T) {
	logger := DiscardLogger

	logger.Debug("debug")
	logger.Debugf("debug %s", "msg")
	logger.Info("info")
	logger.Infof("info %s", "msg")
	logger.Warn("warn")
	logger.Warnf("warn %s", "msg")
	logger.Error("error")
	logger.Errorf("error %s", "msg")

	assert.Equal(t, InvalidLevel, logger.LogLevel())
	assert.False(t, logger.Enabled(ErrorLevel))
	assert.Equal(t, DiscardLogger, logger.With("k", "v"))
	assert.NoError(t, logger.Flush())
}

func extractMessage(bytes []byte) (string, error) {
	return extractField(bytes, "msg")
}

func extractLevel(bytes []byte) (string, error) {
	return extractField(bytes, "level")
}

func extractField(bytes []byte, key string) (string, error) {
	var head map[string]json.RawMessage
	if err := json.Unmarshal(bytes, &head); err != nil {
		return "", err
	}

	var value string
	if err := json.Unmarshal(head[key], &value); err != nil {
		return "", err
	}
	return value, nil
}
