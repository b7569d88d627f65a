/*
Package ofp4 holds the OpenFlow 1.3 wire constants and fixed record sizes.

ofp4: ofp is short for openflow protocol, and 4 is "Protocol version 0x04".

Records are laid out in network byte order. Variable length records are
padded to 8 byte boundaries; Align8 gives the padded length and Zero
clears padding.
*/
package ofp4
