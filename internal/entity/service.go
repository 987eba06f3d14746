package entity

// HostRef is a service's link to its host: either just the host's name
// (ByName) or, after attachment, the Host itself (Attached). The zero value
// is an unattached reference with no name.
type HostRef struct {
	name string
	host *Host
}

// ByName returns a weak reference that only carries the host's name.
func ByName(name string) HostRef {
	return HostRef{name: name}
}

// Attached returns a reference to a built Host.
func Attached(h *Host) HostRef {
	return HostRef{host: h}
}

// Name returns the referenced host's name, whichever form the ref has.
func (r HostRef) Name() string {
	if r.host != nil {
		return r.host.Name()
	}
	return r.name
}

// Host returns the Host for an attached reference. ok is false for ByName
// references.
func (r HostRef) Host() (h *Host, ok bool) {
	return r.host, r.host != nil
}

// IsAttached reports whether the reference points at a Host value.
func (r HostRef) IsAttached() bool {
	return r.host != nil
}

// Service is a monitored check belonging to a host.
type Service struct {
	StatusEntity
	host HostRef
}

// NewService builds a Service from one raw servicestatus record. hostName
// may be empty for feeds that deliver services before their host.
func NewService(name string, attrs Attributes, hostName string) (*Service, error) {
	base, err := newStatusEntity(name, attrs)
	if err != nil {
		return nil, err
	}
	return &Service{StatusEntity: base, host: ByName(hostName)}, nil
}

// AttachHost points the service at h, replacing whatever reference it had.
// It does not check that h's name matches an earlier ByName reference.
func (s *Service) AttachHost(h *Host) {
	s.host = Attached(h)
}

// HostRef returns the service's host reference.
func (s *Service) HostRef() HostRef {
	return s.host
}

// HostName returns the owning host's name, or "" when unknown.
func (s *Service) HostName() string {
	return s.host.Name()
}

// Fields returns name, host, then every required field in declared order.
func (s *Service) Fields() []FieldValue {
	out := make([]FieldValue, 0, numFields+2)
	out = append(out,
		FieldValue{Name: "name", Value: s.Name()},
		FieldValue{Name: "host", Value: s.HostName()},
	)
	return s.appendRequired(out)
}
