package oflib

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"

	"github.com/hkwi/oflib/action"
	"github.com/hkwi/oflib/ofp4"
	"github.com/hkwi/oflib/oxm"
)

// ActionCodec sizes and packs single actions. PackAction must write
// exactly ActionLen bytes.
type ActionCodec interface {
	ActionLen(a action.Action) (int, error)
	PackAction(a action.Action, data []byte) (int, error)
}

// Encoder computes wire lengths of logical records and packs them into
// caller owned buffers. It is immutable once built and may be shared
// between goroutines.
type Encoder struct {
	actions    ActionCodec
	exp        *Experimenters
	log        logrus.FieldLogger
	matchOrder oxm.Order
}

type Option func(*Encoder)

func WithActionCodec(c ActionCodec) Option {
	return func(e *Encoder) {
		e.actions = c
	}
}

func WithExperimenters(x *Experimenters) Option {
	return func(e *Encoder) {
		e.exp = x
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Encoder) {
		e.log = l
	}
}

// WithMatchOrder selects how the integer values of OXM match fields are
// stored. The default is oxm.HostOrder, which is what the oxm constructors
// and the text parsers produce; fields from oxm.FromPacket need
// oxm.WireOrder.
func WithMatchOrder(order oxm.Order) Option {
	return func(e *Encoder) {
		e.matchOrder = order
	}
}

func NewEncoder(opts ...Option) *Encoder {
	e := &Encoder{
		actions:    action.Codec{},
		log:        logrus.StandardLogger().WithField("component", "oflib"),
		matchOrder: oxm.HostOrder,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Encoder) unsupported(kind string, tag interface{}) error {
	e.log.WithFields(logrus.Fields{"record": kind, "type": tag}).Warn("unsupported record type")
	encodeErrors.WithLabelValues(kind, reasonUnsupported).Inc()
	return errors.Wrapf(ErrUnsupportedRecordType, "%s type %v", kind, tag)
}

func (e *Encoder) missingHandler(kind string, id uint32) error {
	e.log.WithFields(logrus.Fields{"record": kind, "experimenter": fmt.Sprintf("0x%x", id)}).Warn("no experimenter handler registered")
	encodeErrors.WithLabelValues(kind, reasonMissingHandler).Inc()
	return errors.Wrapf(ErrMissingExtensionHandler, "%s experimenter 0x%x", kind, id)
}

func (e *Encoder) need(kind string, data []byte, length int) error {
	if len(data) >= length {
		return nil
	}
	e.log.WithFields(logrus.Fields{"record": kind, "length": length, "have": len(data)}).Warn("destination buffer too short")
	encodeErrors.WithLabelValues(kind, reasonShortBuffer).Inc()
	return errors.Wrapf(ErrShortBuffer, "%s needs %d bytes, have %d", kind, length, len(data))
}

// checkLen rejects a record whose length does not fit its 16 bit length field.
func (e *Encoder) checkLen(kind string, length int) error {
	if length <= maxRecordLen {
		return nil
	}
	return e.tooLong(kind, errors.Newf("%d bytes, limit %d", length, maxRecordLen))
}

// checkFields rejects OXM fields whose payload does not fit the TLV length.
func (e *Encoder) checkFields(fields []oxm.Field) error {
	if err := oxm.Check(fields); err != nil {
		return e.tooLong(kindMatch, err)
	}
	return nil
}

func (e *Encoder) tooLong(kind string, cause error) error {
	e.log.WithFields(logrus.Fields{"record": kind}).WithError(cause).Warn("record too long")
	encodeErrors.WithLabelValues(kind, reasonTooLong).Inc()
	return errors.Mark(errors.Wrap(cause, kind), ErrRecordTooLong)
}

// violation reports a pack pass that disagrees with the length pass.
// The record region is cleared so that no partial record escapes.
func (e *Encoder) violation(kind string, region []byte, packed, computed int) error {
	err := errors.WithAssertionFailure(
		errors.Wrapf(ErrInvariantViolation, "%s packed %d bytes, computed %d", kind, packed, computed))
	e.log.WithFields(logrus.Fields{
		"record":   kind,
		"packed":   packed,
		"computed": computed,
	}).Error("packed length disagrees with computed length")
	encodeErrors.WithLabelValues(kind, reasonInvariant).Inc()
	if debugChecks {
		panic(err)
	}
	ofp4.Zero(region)
	return err
}

// packAction packs one action at the head of data, which ends at the
// enclosing record's computed boundary.
func (e *Encoder) packAction(kind string, a action.Action, data []byte) (int, error) {
	want, err := e.actions.ActionLen(a)
	if err != nil {
		return 0, err
	}
	if want > len(data) {
		return 0, e.violation(kind, data, want, len(data))
	}
	n, err := e.actions.PackAction(a, data[:want])
	if err != nil {
		return 0, err
	}
	if n != want {
		return 0, e.violation(kind, data[:want], n, want)
	}
	return n, nil
}

func (e *Encoder) actionsLen(actions []action.Action) (int, error) {
	total := 0
	for _, a := range actions {
		n, err := e.actions.ActionLen(a)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

// Len returns the wire length of any record.
func (e *Encoder) Len(r Record) (int, error) {
	switch v := r.(type) {
	case Instruction:
		return e.InstructionLen(v)
	case Match:
		return e.MatchLen(v)
	case QueueProp:
		return e.QueuePropLen(v)
	case Bucket:
		return e.BucketLen(v)
	case FlowStats:
		return e.FlowStatsLen(v)
	case GroupStats:
		n := GroupStatsLen(v)
		if err := e.checkLen(kindGroupStats, n); err != nil {
			return 0, err
		}
		return n, nil
	case GroupDescStats:
		return e.GroupDescStatsLen(v)
	case PacketQueue:
		return e.PacketQueueLen(v)
	case BucketCounter:
		return ofp4.OFP_BUCKET_COUNTER_SIZE, nil
	case Port:
		return ofp4.OFP_PORT_SIZE, nil
	case TableStats:
		return ofp4.OFP_TABLE_STATS_SIZE, nil
	case PortStats:
		return ofp4.OFP_PORT_STATS_SIZE, nil
	case QueueStats:
		return ofp4.OFP_QUEUE_STATS_SIZE, nil
	}
	return 0, e.unsupported("record", fmt.Sprintf("%T", r))
}

// Pack writes any record into data and returns the bytes written.
// Matches are packed in the order set by WithMatchOrder.
func (e *Encoder) Pack(r Record, data []byte) (int, error) {
	switch v := r.(type) {
	case Instruction:
		return e.PackInstruction(v, data)
	case Match:
		return e.PackMatch(v, data, e.matchOrder)
	case QueueProp:
		return e.PackQueueProp(v, data)
	case Bucket:
		return e.PackBucket(v, data)
	case FlowStats:
		return e.PackFlowStats(v, data)
	case GroupStats:
		return e.PackGroupStats(v, data)
	case GroupDescStats:
		return e.PackGroupDescStats(v, data)
	case PacketQueue:
		return e.PackPacketQueue(v, data)
	case BucketCounter:
		return e.PackBucketCounter(v, data)
	case Port:
		return e.PackPort(v, data)
	case TableStats:
		return e.PackTableStats(v, data)
	case PortStats:
		return e.PackPortStats(v, data)
	case QueueStats:
		return e.PackQueueStats(v, data)
	}
	return 0, e.unsupported("record", fmt.Sprintf("%T", r))
}

// Marshal runs the length pass, allocates exactly that many bytes and
// packs r into them.
func (e *Encoder) Marshal(r Record) ([]byte, error) {
	length, err := e.Len(r)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, length)
	n, err := e.Pack(r, buf)
	if err != nil {
		return nil, err
	}
	if n != length {
		return nil, e.violation(r.recordKind(), buf, n, length)
	}
	packedBytes.WithLabelValues(r.recordKind()).Add(float64(n))
	e.log.WithFields(logrus.Fields{"record": r.recordKind(), "length": n}).Debug("marshaled")
	return buf, nil
}

// MarshalAll concatenates the packed form of records, as in a multipart
// reply body.
func (e *Encoder) MarshalAll(records ...Record) ([]byte, error) {
	var ret []byte
	for _, r := range records {
		buf, err := e.Marshal(r)
		if err != nil {
			return nil, err
		}
		ret = append(ret, buf...)
	}
	return ret, nil
}

// fail clears region when a child reported a length disagreement.
func fail(region []byte, err error) error {
	if errors.Is(err, ErrInvariantViolation) {
		ofp4.Zero(region)
	}
	return err
}
