// Package media owns the read-only media catalog and the relevance gate that
// decides whether a proposed image may be shown for a given intent. The gate
// fails closed: unknown ids and ids sharing no token with the intent degrade
// to a placeholder.
package media
