package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeConflict           ErrorCode = "COMMON_004"
	ErrCodeTooManyRequests    ErrorCode = "COMMON_005"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_006"
	ErrCodeTimeout            ErrorCode = "COMMON_007"
	ErrCodeValidation         ErrorCode = "COMMON_008"
	ErrCodeSerialization      ErrorCode = "COMMON_009"
	ErrCodeNotImplemented     ErrorCode = "COMMON_010"
)

// Short aliases used throughout the codebase
const (
	CodeInternal           = ErrCodeInternal
	CodeInvalidParam       = ErrCodeBadRequest
	CodeNotFound           = ErrCodeNotFound
	CodeConflict           = ErrCodeConflict
	CodeRateLimit          = ErrCodeTooManyRequests
	CodeServiceUnavailable = ErrCodeServiceUnavailable
	CodeTimeout            = ErrCodeTimeout
	CodeValidation         = ErrCodeValidation
	CodeSerialization      = ErrCodeSerialization
	CodeNotImplemented     = ErrCodeNotImplemented

	CodeOK      = ErrorCode("OK")
	CodeUnknown = ErrorCode("UNKNOWN")
)

// Molecule graph error codes. These fire at graph construction or DTO
// decoding; descriptor calculators themselves never produce them because a
// constructed molecule already satisfies the structural invariants.
const (
	ErrCodeMoleculeEmptySymbol     ErrorCode = "MOL_001"
	ErrCodeMoleculeBondEndpoint    ErrorCode = "MOL_002"
	ErrCodeMoleculeSelfBond        ErrorCode = "MOL_003"
	ErrCodeMoleculeDuplicateBond   ErrorCode = "MOL_004"
	ErrCodeMoleculeUnknownOrder    ErrorCode = "MOL_005"
	ErrCodeMoleculeAtomIndex       ErrorCode = "MOL_006"
	ErrCodeMoleculeNegativeHCount  ErrorCode = "MOL_007"
	ErrCodeMoleculeTooLarge        ErrorCode = "MOL_008"
	ErrCodeMoleculeUnknownElement  ErrorCode = "MOL_009"
	ErrCodeMoleculeDecodeFailed    ErrorCode = "MOL_010"
)

const (
	CodeMoleculeBondEndpoint   = ErrCodeMoleculeBondEndpoint
	CodeMoleculeUnknownElement = ErrCodeMoleculeUnknownElement
	CodeMoleculeDecodeFailed   = ErrCodeMoleculeDecodeFailed
)

// Descriptor error codes
const (
	ErrCodeMissingCoordinates   ErrorCode = "DESC_001"
	ErrCodeUnknownScheme        ErrorCode = "DESC_002"
	ErrCodeEmptyMolecule        ErrorCode = "DESC_003"
	ErrCodeDescriptorFailed     ErrorCode = "DESC_004"
)

const (
	CodeMissingCoordinates = ErrCodeMissingCoordinates
	CodeUnknownScheme      = ErrCodeUnknownScheme
)

// Fingerprint and similarity error codes
const (
	ErrCodeFingerprintSize      ErrorCode = "FP_001"
	ErrCodeFingerprintMismatch  ErrorCode = "FP_002"
	ErrCodeUnsupportedMetric    ErrorCode = "FP_003"
)

// Table adapter error codes
const (
	ErrCodeTableColumnNotFound   ErrorCode = "TBL_001"
	ErrCodeTableColumnType       ErrorCode = "TBL_002"
	ErrCodeTableNoMoleculeColumn ErrorCode = "TBL_003"
	ErrCodeTableSettingsInvalid  ErrorCode = "TBL_004"
	ErrCodeTableSettingsKey      ErrorCode = "TBL_005"
	ErrCodeTableCellType         ErrorCode = "TBL_006"
)

const (
	CodeTableColumnNotFound = ErrCodeTableColumnNotFound
)

// Messaging error codes
const (
	ErrCodePublishFailed        ErrorCode = "MSG_001"
	ErrCodeConsumeFailed        ErrorCode = "MSG_002"
	ErrCodeEnvelopeDecodeFailed ErrorCode = "MSG_003"
	ErrCodeUnknownEventType     ErrorCode = "MSG_004"
)

const (
	CodePublishFailed        = ErrCodePublishFailed
	CodeEnvelopeDecodeFailed = ErrCodeEnvelopeDecodeFailed
)

// Configuration error codes
const (
	ErrCodeConfigLoadFailed ErrorCode = "CFG_001"
	ErrCodeConfigInvalid    ErrorCode = "CFG_002"
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeTooManyRequests:    http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeNotImplemented:     http.StatusNotImplemented,

	ErrCodeMoleculeEmptySymbol:    http.StatusBadRequest,
	ErrCodeMoleculeBondEndpoint:   http.StatusBadRequest,
	ErrCodeMoleculeSelfBond:       http.StatusBadRequest,
	ErrCodeMoleculeDuplicateBond:  http.StatusBadRequest,
	ErrCodeMoleculeUnknownOrder:   http.StatusBadRequest,
	ErrCodeMoleculeAtomIndex:      http.StatusBadRequest,
	ErrCodeMoleculeNegativeHCount: http.StatusBadRequest,
	ErrCodeMoleculeTooLarge:       http.StatusRequestEntityTooLarge,
	ErrCodeMoleculeUnknownElement: http.StatusBadRequest,
	ErrCodeMoleculeDecodeFailed:   http.StatusBadRequest,

	ErrCodeMissingCoordinates: http.StatusBadRequest,
	ErrCodeUnknownScheme:      http.StatusBadRequest,
	ErrCodeEmptyMolecule:      http.StatusBadRequest,
	ErrCodeDescriptorFailed:   http.StatusInternalServerError,

	ErrCodeFingerprintSize:     http.StatusBadRequest,
	ErrCodeFingerprintMismatch: http.StatusBadRequest,
	ErrCodeUnsupportedMetric:   http.StatusBadRequest,

	ErrCodeTableColumnNotFound:   http.StatusBadRequest,
	ErrCodeTableColumnType:       http.StatusBadRequest,
	ErrCodeTableNoMoleculeColumn: http.StatusBadRequest,
	ErrCodeTableSettingsInvalid:  http.StatusBadRequest,
	ErrCodeTableSettingsKey:      http.StatusBadRequest,
	ErrCodeTableCellType:         http.StatusBadRequest,

	ErrCodePublishFailed:        http.StatusServiceUnavailable,
	ErrCodeConsumeFailed:        http.StatusInternalServerError,
	ErrCodeEnvelopeDecodeFailed: http.StatusBadRequest,
	ErrCodeUnknownEventType:     http.StatusBadRequest,

	ErrCodeConfigLoadFailed: http.StatusInternalServerError,
	ErrCodeConfigInvalid:    http.StatusInternalServerError,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeConflict:           "resource conflict",
	ErrCodeTooManyRequests:    "too many requests",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeNotImplemented:     "not implemented",

	ErrCodeMoleculeEmptySymbol:    "atom element symbol must not be empty",
	ErrCodeMoleculeBondEndpoint:   "bond endpoint does not belong to this molecule",
	ErrCodeMoleculeSelfBond:       "bond endpoints must be distinct atoms",
	ErrCodeMoleculeDuplicateBond:  "bond between these atoms already exists",
	ErrCodeMoleculeUnknownOrder:   "unknown bond order",
	ErrCodeMoleculeAtomIndex:      "bond references an atom index outside the molecule",
	ErrCodeMoleculeNegativeHCount: "implicit hydrogen count must not be negative",
	ErrCodeMoleculeTooLarge:       "molecule exceeds the configured atom limit",
	ErrCodeMoleculeUnknownElement: "unknown element symbol",
	ErrCodeMoleculeDecodeFailed:   "failed to decode molecule",

	ErrCodeMissingCoordinates: "molecule has atoms without 3D coordinates",
	ErrCodeUnknownScheme:      "unknown weighting scheme",
	ErrCodeEmptyMolecule:      "molecule has no atoms",
	ErrCodeDescriptorFailed:   "descriptor computation failed",

	ErrCodeFingerprintSize:     "invalid fingerprint size",
	ErrCodeFingerprintMismatch: "fingerprints are not comparable",
	ErrCodeUnsupportedMetric:   "unsupported similarity metric",

	ErrCodeTableColumnNotFound:   "column does not exist in the input table",
	ErrCodeTableColumnType:       "column does not contain molecule cells",
	ErrCodeTableNoMoleculeColumn: "input table contains no molecule column",
	ErrCodeTableSettingsInvalid:  "invalid node settings",
	ErrCodeTableSettingsKey:      "missing settings key",
	ErrCodeTableCellType:         "unexpected cell type",

	ErrCodePublishFailed:        "failed to publish message",
	ErrCodeConsumeFailed:        "failed to consume message",
	ErrCodeEnvelopeDecodeFailed: "failed to decode event envelope",
	ErrCodeUnknownEventType:     "unknown event type",

	ErrCodeConfigLoadFailed: "failed to load configuration",
	ErrCodeConfigInvalid:    "invalid configuration",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}
