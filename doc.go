/*
Package oflib computes the wire length of OpenFlow 1.3 structures and
packs them into caller provided buffers.

Every record kind has a length pass and a pack pass:

	e := oflib.NewEncoder()
	n, err := e.FlowStatsLen(fs)
	buf := make([]byte, n)
	_, err = e.PackFlowStats(fs, buf)

or simply e.Marshal(fs). The pack pass writes exactly as many bytes as the
length pass reported, and every pad byte is zero.

Experimenter instructions and matches are sized and packed by handlers
registered in an Experimenters table. Actions go through an ActionCodec,
action.Codec by default.
*/
package oflib
