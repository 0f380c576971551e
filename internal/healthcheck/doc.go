// Package healthcheck reports service readiness based on the loaded question
// pool: how many questions it holds and how they split across difficulties.
package healthcheck
