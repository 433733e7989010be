package feed

import (
	"context"
	"encoding/json"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/encoding"
	"google.golang.org/grpc/status"

	"zentra/internal/common"
)

const codecName = "json"

// jsonCodec carries plain Go structs over gRPC as JSON frames.
type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v interface{}) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string                               { return codecName }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type PageRequest struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

type FeedServiceServer interface {
	GetPage(ctx context.Context, req *PageRequest) (*Page, error)
}

const getPageMethod = "/zentra.feed.v1.FeedService/GetPage"

var FeedServiceDesc = grpc.ServiceDesc{
	ServiceName: "zentra.feed.v1.FeedService",
	HandlerType: (*FeedServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetPage", Handler: getPageHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "zentra/feed",
}

func RegisterFeedServiceServer(s grpc.ServiceRegistrar, srv FeedServiceServer) {
	s.RegisterService(&FeedServiceDesc, srv)
}

func getPageHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(PageRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FeedServiceServer).GetPage(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: getPageMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FeedServiceServer).GetPage(ctx, req.(*PageRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// GRPCHandlers exposes the paginator as FeedService.
type GRPCHandlers struct {
	paginator    *Paginator
	defaultLimit int
}

func NewGRPCHandlers(paginator *Paginator, defaultLimit int) *GRPCHandlers {
	return &GRPCHandlers{paginator: paginator, defaultLimit: defaultLimit}
}

func (h *GRPCHandlers) GetPage(ctx context.Context, req *PageRequest) (*Page, error) {
	limit := req.Limit
	if limit == 0 {
		limit = h.defaultLimit
	}
	page, err := h.paginator.Page(ctx, req.Skip, limit)
	if err != nil {
		return nil, toStatus(err)
	}
	return &page, nil
}

func toStatus(err error) error {
	appErr := common.AsAppError(err)
	switch {
	case errors.Is(err, common.ErrValidation):
		return status.Error(codes.InvalidArgument, appErr.Message)
	case errors.Is(err, common.ErrNotFound):
		return status.Error(codes.NotFound, appErr.Message)
	default:
		return status.Error(codes.Internal, "failed to load feed")
	}
}

type FeedServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewFeedServiceClient(cc grpc.ClientConnInterface) *FeedServiceClient {
	return &FeedServiceClient{cc: cc}
}

func (c *FeedServiceClient) GetPage(ctx context.Context, req *PageRequest, opts ...grpc.CallOption) (*Page, error) {
	out := new(Page)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	if err := c.cc.Invoke(ctx, getPageMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
