// Package sources recovers structured YouTube records from watch, search and
// playlist pages without calling any official API.
//
// The YouTube implementation is split across files by responsibility:
//
//	youtube_scan.go     balanced-object scanner over raw page text
//	youtube_extract.go  marker lookup, strict decode, hex-escape repair
//	youtube_tree.go     decoded tree (tagged union) and nil-safe accessors
//	youtube_walk.go     pre-order walk over mapping nodes
//	youtube_text.go     scalar normalizers (text, counts, durations, URLs)
//	youtube_records.go  video / channel / playlist record builders
//	youtube_search.go   search aggregator and search page fetch
//	youtube_playlist.go playlist aggregator and playlist page fetch
//	youtube_video.go    single-video details from the player payload
//	youtube_lookup.go   request dispatch and the callback adapter
package sources

const (
	ytBaseURL     = "https://www.youtube.com"
	ytWatchURL    = ytBaseURL + "/watch?v="
	ytChannelURL  = ytBaseURL + "/channel/"
	ytPlaylistURL = ytBaseURL + "/playlist?list="
)
