package emburse

import "github.com/MarcFord/emburse-go/internal/apierrors"

// Error is returned by every failed call. Use errors.As to inspect it and
// errors.Is with the Err* sentinels to match on its kind.
type Error = apierrors.Error

// ErrorKind classifies an Error
type ErrorKind = apierrors.Kind

const (
	KindAPI            = apierrors.KindAPI
	KindConfiguration  = apierrors.KindConfiguration
	KindConnectivity   = apierrors.KindConnectivity
	KindInvalidRequest = apierrors.KindInvalidRequest
	KindAuthentication = apierrors.KindAuthentication
	KindPermission     = apierrors.KindPermission
	KindResource       = apierrors.KindResource
	KindAttribute      = apierrors.KindAttribute
)

var (
	ErrAPI            = apierrors.ErrAPI
	ErrConfiguration  = apierrors.ErrConfiguration
	ErrConnectivity   = apierrors.ErrConnectivity
	ErrInvalidRequest = apierrors.ErrInvalidRequest
	ErrAuthentication = apierrors.ErrAuthentication
	ErrPermission     = apierrors.ErrPermission
	ErrResource       = apierrors.ErrResource
	ErrAttribute      = apierrors.ErrAttribute
)
