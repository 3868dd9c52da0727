package apierr

import "net/http"

// TableEntry is the enriched rendering of one known error code.
type TableEntry struct {
	Status  int
	Message string
	Hint    string
}

// ImageErrorCode enumerates the provider's image-processing failure codes.
type ImageErrorCode string

const (
	ImageTooLarge          ImageErrorCode = "image_too_large"
	ImageTooSmall          ImageErrorCode = "image_too_small"
	InvalidImage           ImageErrorCode = "invalid_image"
	InvalidImageFormat     ImageErrorCode = "invalid_image_format"
	InvalidImageMode       ImageErrorCode = "invalid_image_mode"
	ImageParseError        ImageErrorCode = "image_parse_error"
	UnsupportedImageType   ImageErrorCode = "unsupported_image_media_type"
	ImageContentViolation  ImageErrorCode = "image_content_policy_violation"
	TooManyImages          ImageErrorCode = "too_many_images"
)

// ImageErrorCodes lists every member of the enum; the completeness test
// walks this against the table.
func ImageErrorCodes() []ImageErrorCode {
	return []ImageErrorCode{
		ImageTooLarge, ImageTooSmall, InvalidImage, InvalidImageFormat,
		InvalidImageMode, ImageParseError, UnsupportedImageType,
		ImageContentViolation, TooManyImages,
	}
}

var imageErrors = map[ImageErrorCode]TableEntry{
	ImageTooLarge: {
		Status:  http.StatusBadRequest,
		Message: "The uploaded image exceeds the maximum allowed size.",
		Hint:    "Resize the image below 20MB and retry the request.",
	},
	ImageTooSmall: {
		Status:  http.StatusBadRequest,
		Message: "The uploaded image is below the minimum supported dimensions.",
		Hint:    "Provide an image of at least 10x10 pixels.",
	},
	InvalidImage: {
		Status:  http.StatusBadRequest,
		Message: "The uploaded image could not be decoded.",
		Hint:    "Verify the file is a valid image and not corrupted.",
	},
	InvalidImageFormat: {
		Status:  http.StatusBadRequest,
		Message: "The image format is not supported.",
		Hint:    "Convert the image to PNG, JPEG, WEBP or GIF.",
	},
	InvalidImageMode: {
		Status:  http.StatusBadRequest,
		Message: "The image color mode is not supported.",
		Hint:    "Convert the image to RGB or RGBA mode.",
	},
	ImageParseError: {
		Status:  http.StatusBadRequest,
		Message: "The image payload could not be parsed.",
		Hint:    "Check that the base64 or URL payload is complete and well-formed.",
	},
	UnsupportedImageType: {
		Status:  http.StatusBadRequest,
		Message: "The image media type is not supported by the model.",
		Hint:    "Use one of the documented image media types.",
	},
	ImageContentViolation: {
		Status:  http.StatusBadRequest,
		Message: "The image was rejected by the content policy.",
		Hint:    "Remove disallowed content from the image before retrying.",
	},
	TooManyImages: {
		Status:  http.StatusBadRequest,
		Message: "The request contains more images than the model accepts.",
		Hint:    "Reduce the number of attached images and retry.",
	},
}

// FileErrorCode enumerates file-upload failure codes.
type FileErrorCode string

const (
	FileTooLarge        FileErrorCode = "file_too_large"
	FileEmpty           FileErrorCode = "empty_file"
	FileNotFound        FileErrorCode = "file_not_found"
	InvalidFileFormat   FileErrorCode = "invalid_file_format"
	UnsupportedFileType FileErrorCode = "unsupported_file_type"
	FileQuotaExceeded   FileErrorCode = "file_quota_exceeded"
)

func FileErrorCodes() []FileErrorCode {
	return []FileErrorCode{
		FileTooLarge, FileEmpty, FileNotFound, InvalidFileFormat,
		UnsupportedFileType, FileQuotaExceeded,
	}
}

var fileErrors = map[FileErrorCode]TableEntry{
	FileTooLarge: {
		Status:  http.StatusBadRequest,
		Message: "The uploaded file exceeds the maximum allowed size.",
		Hint:    "Split the file or upload one below the documented limit.",
	},
	FileEmpty: {
		Status:  http.StatusBadRequest,
		Message: "The uploaded file is empty.",
		Hint:    "Upload a file with content.",
	},
	FileNotFound: {
		Status:  http.StatusNotFound,
		Message: "The referenced file does not exist.",
		Hint:    "Check the file id; the file may have been deleted or expired.",
	},
	InvalidFileFormat: {
		Status:  http.StatusBadRequest,
		Message: "The file format could not be parsed.",
		Hint:    "Verify the file matches its declared format.",
	},
	UnsupportedFileType: {
		Status:  http.StatusBadRequest,
		Message: "The file type is not supported for this operation.",
		Hint:    "Consult the documentation for the accepted file types.",
	},
	FileQuotaExceeded: {
		Status:  http.StatusForbidden,
		Message: "The organization's file storage quota is exhausted.",
		Hint:    "Delete unused files or request a quota increase.",
	},
}

// VectorStoreErrorCode enumerates vector-store failure codes.
type VectorStoreErrorCode string

const (
	VectorStoreNotFound      VectorStoreErrorCode = "vector_store_not_found"
	VectorStoreExpired       VectorStoreErrorCode = "vector_store_expired"
	VectorStoreFileFailed    VectorStoreErrorCode = "vector_store_file_failed"
	VectorStoreQuotaExceeded VectorStoreErrorCode = "vector_store_quota_exceeded"
	VectorStoreBusy          VectorStoreErrorCode = "vector_store_busy"
)

func VectorStoreErrorCodes() []VectorStoreErrorCode {
	return []VectorStoreErrorCode{
		VectorStoreNotFound, VectorStoreExpired, VectorStoreFileFailed,
		VectorStoreQuotaExceeded, VectorStoreBusy,
	}
}

var vectorStoreErrors = map[VectorStoreErrorCode]TableEntry{
	VectorStoreNotFound: {
		Status:  http.StatusNotFound,
		Message: "The referenced vector store does not exist.",
		Hint:    "Check the vector store id; it may have been deleted.",
	},
	VectorStoreExpired: {
		Status:  http.StatusGone,
		Message: "The vector store has expired.",
		Hint:    "Recreate the vector store or extend its expiry policy.",
	},
	VectorStoreFileFailed: {
		Status:  http.StatusBadRequest,
		Message: "A file attached to the vector store failed processing.",
		Hint:    "Inspect the file's last_error and re-attach a valid file.",
	},
	VectorStoreQuotaExceeded: {
		Status:  http.StatusForbidden,
		Message: "The organization's vector store quota is exhausted.",
		Hint:    "Delete unused vector stores or request a quota increase.",
	},
	VectorStoreBusy: {
		Status:  http.StatusConflict,
		Message: "The vector store is still processing files.",
		Hint:    "Wait for the in_progress file counts to drain and retry.",
	},
}

// NetworkErrorCode enumerates bare transport failures by their conventional
// errno-style code.
type NetworkErrorCode string

const (
	ECONNREFUSED NetworkErrorCode = "ECONNREFUSED"
	ECONNRESET   NetworkErrorCode = "ECONNRESET"
	ECONNABORTED NetworkErrorCode = "ECONNABORTED"
	ETIMEDOUT    NetworkErrorCode = "ETIMEDOUT"
	ENOTFOUND    NetworkErrorCode = "ENOTFOUND"
	EAIAGAIN     NetworkErrorCode = "EAI_AGAIN"
	EPIPE        NetworkErrorCode = "EPIPE"
	EHOSTUNREACH NetworkErrorCode = "EHOSTUNREACH"
)

func NetworkErrorCodes() []NetworkErrorCode {
	return []NetworkErrorCode{
		ECONNREFUSED, ECONNRESET, ECONNABORTED, ETIMEDOUT,
		ENOTFOUND, EAIAGAIN, EPIPE, EHOSTUNREACH,
	}
}

var networkErrors = map[NetworkErrorCode]TableEntry{
	ECONNREFUSED: {
		Status:  http.StatusServiceUnavailable,
		Message: "The upstream provider refused the connection.",
		Hint:    "The provider may be down; retry with backoff.",
	},
	ECONNRESET: {
		Status:  http.StatusBadGateway,
		Message: "The upstream connection was reset mid-request.",
		Hint:    "Retry the request; persistent resets indicate a proxy issue.",
	},
	ECONNABORTED: {
		Status:  http.StatusBadGateway,
		Message: "The upstream connection was aborted.",
		Hint:    "Retry the request.",
	},
	ETIMEDOUT: {
		Status:  http.StatusGatewayTimeout,
		Message: "The upstream connection timed out.",
		Hint:    "Retry with a longer timeout or a smaller request.",
	},
	ENOTFOUND: {
		Status:  http.StatusBadGateway,
		Message: "The upstream host could not be resolved.",
		Hint:    "Check the configured base URL and DNS.",
	},
	EAIAGAIN: {
		Status:  http.StatusServiceUnavailable,
		Message: "DNS resolution for the upstream host failed temporarily.",
		Hint:    "Retry shortly; check the resolver if it persists.",
	},
	EPIPE: {
		Status:  http.StatusBadGateway,
		Message: "The upstream connection was closed while writing.",
		Hint:    "Retry the request.",
	},
	EHOSTUNREACH: {
		Status:  http.StatusServiceUnavailable,
		Message: "The upstream host is unreachable.",
		Hint:    "Check network routing to the provider.",
	},
}

// lookupCode resolves a refined error code across the upload-adjacent
// tables, image codes first.
func lookupCode(code string) (TableEntry, bool) {
	if entry, ok := imageErrors[ImageErrorCode(code)]; ok {
		return entry, true
	}
	if entry, ok := fileErrors[FileErrorCode(code)]; ok {
		return entry, true
	}
	if entry, ok := vectorStoreErrors[VectorStoreErrorCode(code)]; ok {
		return entry, true
	}
	return TableEntry{}, false
}
