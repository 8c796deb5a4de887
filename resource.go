package emburse

import (
	"context"
	"fmt"
	"net/url"

	"github.com/MarcFord/emburse-go/internal/apierrors"
)

// Lister lists the resources of a collection
type Lister[T Resource] interface {
	List(ctx context.Context, params Params) ([]T, error)
}

// Retriever fetches one resource by id
type Retriever[T Resource] interface {
	Retrieve(ctx context.Context, id string) (T, error)
}

// Refresher reloads a resource in place
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Creator creates a resource from validated parameters
type Creator[T Resource] interface {
	Create(ctx context.Context, params Params) (T, error)
}

// Updater sends changed fields and reloads the resource from the response
type Updater interface {
	Update(ctx context.Context, params Params) error
}

// Deleter deletes a resource
type Deleter interface {
	Delete(ctx context.Context, id string) error
}

func (o *Object) info() (kindInfo, error) {
	info, ok := lookup(o.kind)
	if !ok {
		return kindInfo{}, apierrors.New(apierrors.KindConfiguration, "%s is not an API resource", o.displayKind())
	}
	return info, nil
}

func (o *Object) collectionURL() (string, error) {
	info, err := o.info()
	if err != nil {
		return "", err
	}
	return "/" + info.segment, nil
}

func (o *Object) instanceURL() (string, error) {
	base, err := o.collectionURL()
	if err != nil {
		return "", err
	}
	id := o.ID()
	if id == "" {
		return "", apierrors.New(apierrors.KindInvalidRequest,
			"Could not determine which URL to request: %s instance has invalid ID: %q", o.kind, id)
	}
	return base + "/" + url.PathEscape(id), nil
}

// spawn returns an empty object of the same kind sharing o's token and backend
func (o *Object) spawn() *Object {
	return newObject(o.kind, o.token, o.backend)
}

func list[T Resource](ctx context.Context, o *Object, params Params) ([]T, error) {
	backend, err := o.requestor()
	if err != nil {
		return nil, err
	}
	info, err := o.info()
	if err != nil {
		return nil, err
	}

	resp, token, err := backend.Perform(ctx, "GET", "/"+info.segment, params, nil)
	if err != nil {
		return nil, err
	}

	items, _ := resp[info.envelope].([]interface{})
	out := make([]T, 0, len(items))
	for i, item := range items {
		r, ok := materialize(item, token, backend, o.kind).(T)
		if !ok {
			return nil, apierrors.New(apierrors.KindAPI,
				"Invalid response object from API: %s[%d] is not an object", info.envelope, i)
		}
		out = append(out, r)
	}
	return out, nil
}

func retrieve[T Resource](ctx context.Context, o *Object, id string) (T, error) {
	var zero T
	fresh := o.spawn()
	fresh.fields["id"] = id
	if err := fresh.refresh(ctx); err != nil {
		return zero, err
	}
	return wrap(fresh).(T), nil
}

func (o *Object) refresh(ctx context.Context) error {
	backend, err := o.requestor()
	if err != nil {
		return err
	}
	path, err := o.instanceURL()
	if err != nil {
		return err
	}

	resp, _, err := backend.Perform(ctx, "GET", path, nil, nil)
	if err != nil {
		return err
	}
	o.refreshFrom(resp)
	return nil
}

func create[T Resource](ctx context.Context, o *Object, params Params) (T, error) {
	var zero T
	backend, err := o.requestor()
	if err != nil {
		return zero, err
	}
	info, err := o.info()
	if err != nil {
		return zero, err
	}
	payload, err := info.schema.validate(o.kind, params)
	if err != nil {
		return zero, err
	}

	resp, token, err := backend.Perform(ctx, "POST", "/"+info.segment, payload, nil)
	if err != nil {
		return zero, err
	}
	return newResource(o.kind, token, backend, resp).(T), nil
}

func (o *Object) update(ctx context.Context, params Params) error {
	backend, err := o.requestor()
	if err != nil {
		return err
	}
	if o.ID() == "" {
		if id, ok := params["id"]; ok && id != nil {
			o.fields["id"] = fmt.Sprint(id)
		}
	}
	if o.ID() == "" {
		return apierrors.New(apierrors.KindAttribute,
			"ID: is a required property and must be set to update/edit this resource!")
	}
	path, err := o.instanceURL()
	if err != nil {
		return err
	}

	payload := paramsPayload(params, 1)
	payload["id"] = o.ID()

	resp, _, err := backend.Perform(ctx, "PUT", path, payload, nil)
	if err != nil {
		return err
	}
	o.refreshFrom(resp)
	return nil
}

func (o *Object) delete(ctx context.Context, id string) error {
	backend, err := o.requestor()
	if err != nil {
		return err
	}
	if o.ID() == "" && id != "" {
		o.fields["id"] = id
	}
	if o.ID() == "" {
		return apierrors.New(apierrors.KindAttribute,
			"ID: is a required property and must be set to delete this resource!")
	}
	path, err := o.instanceURL()
	if err != nil {
		return err
	}

	_, _, err = backend.Perform(ctx, "DELETE", path, nil, nil)
	return err
}
