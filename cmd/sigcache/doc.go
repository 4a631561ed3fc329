// Command sigcache manages signature-gated file caches from the command line.
//
// Usage:
//
//	sigcache write report.json --data '{"rows": 10}'
//	sigcache write report.json --from payload.json --force
//	sigcache read report.json report_cache/tmp_1700000000_ab12...cd.json
//	sigcache stats report.json
//	sigcache clear report.json
package main
