package errors

import (
	"bytes"
	"reflect"
	"strings"
)

// ErrorCode represents a specific error code in the system.
type ErrorCode string

const (
	// GeneralInternalServerError represents a generic internal server error.
	GeneralInternalServerError ErrorCode = "general_internal_server_error"
	// GeneralBadRequestError represents a generic bad request error.
	GeneralBadRequestError ErrorCode = "general_bad_request_error"
	// GeneralNotFoundError represents a generic not found error.
	GeneralNotFoundError ErrorCode = "general_not_found_error"

	// CommandInvalidTypeError represents a command whose type is neither enter nor cancel.
	CommandInvalidTypeError ErrorCode = "command_invalid_type"
	// CommandInvalidOrderIDError represents a command without an order id.
	CommandInvalidOrderIDError ErrorCode = "command_invalid_order_id"
	// CommandInvalidSideError represents an enter command with an unknown side.
	CommandInvalidSideError ErrorCode = "command_invalid_side"
	// CommandInvalidSizeError represents a command with an out of range size.
	CommandInvalidSizeError ErrorCode = "command_invalid_size"
	// CommandDecodeError represents a command payload that could not be decoded.
	CommandDecodeError ErrorCode = "command_decode_error"

	// SnapshotDuplicateOrderError represents a snapshot listing the same order twice.
	SnapshotDuplicateOrderError ErrorCode = "snapshot_duplicate_order"
	// SnapshotInvalidOrderError represents a snapshot order with an unusable size or id.
	SnapshotInvalidOrderError ErrorCode = "snapshot_invalid_order"
	// SnapshotCrossedBookError represents a snapshot whose best bid is not below its best ask.
	SnapshotCrossedBookError ErrorCode = "snapshot_crossed_book"

	// RedisConfigError represents an error when the Redis configuration is invalid or nil.
	RedisConfigError ErrorCode = "redis_config_error"
	// RedisConnectionError represents an error when connecting to Redis.
	RedisConnectionError ErrorCode = "redis_connection_error"
	// RedisDisconnectionError represents an error when disconnecting from Redis.
	RedisDisconnectionError ErrorCode = "redis_disconnection_error"
	// RedisPingError represents an error when pinging Redis.
	RedisPingError ErrorCode = "redis_pinging_error"
	// RedisGetError represents an error when getting a value from Redis.
	RedisGetError ErrorCode = "redis_get_error"
	// RedisSetError represents an error when setting a value in Redis.
	RedisSetError ErrorCode = "redis_set_error"
	// RedisDelError represents an error when deleting a value from Redis.
	RedisDelError ErrorCode = "redis_del_error"

	// JournalAppendError represents an error when writing events to the journal.
	JournalAppendError ErrorCode = "journal_append_error"
	// JournalSchemaError represents an error when creating the journal schema.
	JournalSchemaError ErrorCode = "journal_schema_error"
)

// BaseError is an `error` type containing an array of ErrorDetails.
type BaseError struct {
	details []*ErrorDetails
}

// NewBaseError create BaseError with ErrorDetails
func NewBaseError(details ...*ErrorDetails) *BaseError {
	return &BaseError{details: details}
}

// AddErrorDetails add more ErrorDetails to BaseError
func (b *BaseError) AddErrorDetails(errors ...*ErrorDetails) {
	b.details = append(b.details, errors...)
}

// GetDetails get array ErrorDetails on BaseError
func (b *BaseError) GetDetails() []*ErrorDetails {
	return b.details
}

// HasDetails reports whether at least one ErrorDetails was collected.
func (b *BaseError) HasDetails() bool {
	return len(b.details) > 0
}

// Error implement error interface
func (b *BaseError) Error() string {
	buff := bytes.NewBufferString("")

	buff.WriteString("Error on\n")
	for _, err := range b.details {
		buff.WriteString("code: ")
		buff.WriteString(err.Code)
		buff.WriteString("; error: ")
		buff.WriteString(err.Error())
		buff.WriteString("; field: ")
		buff.WriteString(err.Field)
		buff.WriteString("; object: ")
		if err.Object != nil {
			buff.WriteString(reflect.TypeOf(err.Object).String())
		}
		buff.WriteString("\n")
	}

	return strings.TrimSpace(buff.String())
}

// IsAnyCodeEqual check if any ErrorDetails code is equal with given code
func (b *BaseError) IsAnyCodeEqual(code string) bool {
	for _, d := range b.GetDetails() {
		if d.Code == code {
			return true
		}
	}
	return false
}
