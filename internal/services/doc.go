// Package services defines the [AdsService] contract for the remote ads
// platform and implements it for the TikTok Business API.
//
// # AdsService Interface
//
// The submission engine, music coordinator, and token manager all depend on
// this interface, never on a concrete client, so tests substitute fixed
// responses and the wire format stays a replaceable collaborator.
//
// # TikTok Implementation
//
// [TikTokService] uses [oauth2.Config] for the authorization-code exchange
// and refresh grants, and a [rate.Limiter] in front of every request so a
// burst of CLI invocations cannot trip the platform's request quotas.
//
// # Error Handling
//
// Remote-reported submit failures (the platform answered, but rejected the
// ad) surface as [models.RemoteError] carrying the platform's error code so
// the classifier can map them; transport failures surface as plain wrapped
// errors and classify as generic API errors.
package services
