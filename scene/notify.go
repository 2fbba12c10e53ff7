package scene

// Property names a node attribute reported by change notifications.
type Property string

const (
	PropName        Property = "Name"
	PropVisible     Property = "IsVisible"
	PropLocked      Property = "IsLocked"
	PropPosition    Property = "Position"
	PropRotation    Property = "Rotation"
	PropScale       Property = "Scale"
	PropParent      Property = "Parent"
	PropWorldMatrix Property = "WorldMatrix"
)

// Observer receives property change notifications.
type Observer interface {
	PropertyChanged(n *Node, p Property)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(n *Node, p Property)

func (f ObserverFunc) PropertyChanged(n *Node, p Property) { f(n, p) }

// Subscription identifies a registered observer. The zero value is never issued.
type Subscription uint64

type subscriber struct {
	id    Subscription
	obs   Observer
	props map[Property]struct{}
}

func (s *subscriber) wants(p Property) bool {
	if len(s.props) == 0 {
		return true
	}
	_, ok := s.props[p]
	return ok
}

// dispatcher fans a notification out to its subscribers in registration order.
type dispatcher struct {
	subs []*subscriber
}

func (d *dispatcher) add(id Subscription, obs Observer, props []Property) {
	s := &subscriber{id: id, obs: obs}
	if len(props) > 0 {
		s.props = make(map[Property]struct{}, len(props))
		for _, p := range props {
			s.props[p] = struct{}{}
		}
	}
	d.subs = append(d.subs, s)
}

func (d *dispatcher) remove(id Subscription) bool {
	for i, s := range d.subs {
		if s.id == id {
			d.subs = append(d.subs[:i:i], d.subs[i+1:]...)
			return true
		}
	}
	return false
}

func (d *dispatcher) clear() {
	d.subs = nil
}

func (d *dispatcher) emit(n *Node, p Property) {
	if len(d.subs) == 0 {
		return
	}
	// Observers may (un)subscribe while being notified.
	snapshot := d.subs
	for _, s := range snapshot {
		if s.wants(p) && d.has(s.id) {
			s.obs.PropertyChanged(n, p)
		}
	}
}

func (d *dispatcher) has(id Subscription) bool {
	for _, s := range d.subs {
		if s.id == id {
			return true
		}
	}
	return false
}
